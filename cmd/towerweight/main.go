package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env 仅用于本地开发，不存在时忽略
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "towerweight",
		Short:         "输电铁塔重量计算工具",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径 (默认为可执行文件同目录 config.toml)")
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "重量目录 YAML (覆盖配置文件)")

	root.AddCommand(serveCmd())
	root.AddCommand(calcCmd())
	root.AddCommand(catalogCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

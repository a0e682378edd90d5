package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"towerweight/internal/config"
	"towerweight/internal/server"
	"towerweight/internal/service/calculator"
	"towerweight/internal/util"
)

func serveCmd() *cobra.Command {
	var (
		port      int
		devMode   bool
		dataDir   string
		noBrowser bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, devMode, dataDir, noBrowser)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "开发模式")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "数据目录 (覆盖配置文件)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "启动后不打开浏览器")
	return cmd
}

func runServe(port int, devMode bool, dataDir string, noBrowser bool) error {
	fmt.Println("==========================================")
	fmt.Println("  TowerWeight - 铁塔重量计算工具")
	fmt.Println("==========================================")

	cfg, info := loadConfig()

	// 命令行参数覆盖配置
	if port > 0 && !info.PortSpecified {
		cfg.Server.Port = port
	}
	if devMode {
		cfg.Server.DevMode = true
	}
	if dataDir != "" {
		cfg.Data.DataDir = dataDir
	}

	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("加载重量目录失败: %w", err)
	}
	if cfg.Catalog.Path != "" {
		fmt.Printf("重量目录: %s\n", cfg.Catalog.Path)
	}

	// 确保数据目录存在
	exportDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("创建数据目录失败，导出使用系统临时目录: %v", err)
		exportDir = ""
	} else {
		fmt.Printf("导出目录: %s\n", exportDir)
	}

	srv := server.NewServer(cfg, calculator.NewEngine(cat), exportDir)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d/api/status", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		errCh <- srv.Run(ctx, addr, cfg.SweepInterval())
	}()

	if cfg.Server.OpenBrowser && !cfg.Server.DevMode && !noBrowser {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowser(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	if err := <-errCh; err != nil {
		return fmt.Errorf("服务运行失败: %w", err)
	}
	fmt.Println("\n服务已停止")
	return nil
}

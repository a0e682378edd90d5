package main

import (
	"github.com/spf13/cobra"

	"towerweight/internal/catalog"
)

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "以 YAML 输出当前重量目录",
		Long:  "以 YAML 输出当前重量目录，修改后可通过 --catalog 重新加载。",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := loadConfig()
			cat, err := loadCatalog(cfg.Catalog.Path)
			if err != nil {
				return err
			}
			return catalog.WriteYAML(cmd.OutOrStdout(), cat)
		},
	}
}

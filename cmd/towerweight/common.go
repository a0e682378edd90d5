package main

import (
	"fmt"
	"log"

	"towerweight/internal/catalog"
	"towerweight/internal/config"
	"towerweight/internal/service/calculator"
)

var (
	configPath  string
	catalogPath string
)

// loadConfig 加载配置；--catalog 优先于配置文件与环境变量
func loadConfig() (*config.AppConfig, config.LoadConfigInfo) {
	cfg, info, err := config.LoadConfigWithInfo(configPath)
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	return cfg, info
}

// loadCatalog 未指定路径时使用内置目录；外部目录需通过完整校验
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := calculator.VerifyCatalog(cat); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

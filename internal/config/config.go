package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Catalog CatalogConfig `toml:"catalog"`
	Session SessionConfig `toml:"session"`
	Excel   ExcelConfig   `toml:"excel"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int      `toml:"port"`
	DevMode     bool     `toml:"dev_mode"`
	OpenBrowser bool     `toml:"open_browser"`
	CORSOrigins []string `toml:"cors_origins"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// CatalogConfig 重量目录配置
type CatalogConfig struct {
	// Path 为空时使用内置目录
	Path string `toml:"path"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	IdleTimeoutMinutes   int `toml:"idle_timeout_minutes"`
	SweepIntervalSeconds int `toml:"sweep_interval_seconds"`
}

// ExcelConfig Excel 导出相关配置
type ExcelConfig struct {
	FileName        string `toml:"file_name"`
	SheetName       string `toml:"sheet_name"`
	DownloadTTLMins int    `toml:"download_ttl_minutes"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	Found         bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			DevMode:     false,
			OpenBrowser: true,
			CORSOrigins: []string{"*"},
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Session: SessionConfig{
			IdleTimeoutMinutes:   240,
			SweepIntervalSeconds: 60,
		},
		Excel: ExcelConfig{
			FileName:        "tower_weight_calculations.xlsx",
			SheetName:       "Sheet1",
			DownloadTTLMins: 10,
		},
	}
}

// IdleTimeout 会话空闲超时
func (c *AppConfig) IdleTimeout() time.Duration {
	return time.Duration(c.Session.IdleTimeoutMinutes) * time.Minute
}

// SweepInterval 过期会话清理间隔
func (c *AppConfig) SweepInterval() time.Duration {
	return time.Duration(c.Session.SweepIntervalSeconds) * time.Second
}

// DownloadTTL 导出下载链接有效期
func (c *AppConfig) DownloadTTL() time.Duration {
	if c.Excel.DownloadTTLMins <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.Excel.DownloadTTLMins) * time.Minute
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 默认配置文件：可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息；path 为空时使用默认位置
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			applyEnv(config, &info)
			return config, info, nil
		}
		return nil, info, fmt.Errorf("read config %s: %w", path, err)
	}
	info.Found = true
	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(config, &info)
	return config, info, nil
}

// applyEnv 环境变量覆盖（.env 由 main 预先加载）
func applyEnv(config *AppConfig, info *LoadConfigInfo) {
	if v := strings.TrimSpace(os.Getenv("TOWERWEIGHT_PORT")); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			config.Server.Port = p
			info.PortSpecified = true
		}
	}
	if v := strings.TrimSpace(os.Getenv("TOWERWEIGHT_CATALOG_PATH")); v != "" {
		config.Catalog.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("TOWERWEIGHT_DATA_DIR")); v != "" {
		config.Data.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TOWERWEIGHT_DEV")); v == "1" || strings.EqualFold(v, "true") {
		config.Server.DevMode = true
	}
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(path string, config *AppConfig) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir 确保数据目录存在，返回导出临时目录
// 相对路径以可执行文件所在目录为基准
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	exportDir := filepath.Join(dataDir, "exports")
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", err
	}
	return exportDir, nil
}

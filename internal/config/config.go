package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Reports ReportsConfig `toml:"reports"`
	Log     LogConfig     `toml:"log"`
	Watch   WatchConfig   `toml:"watch"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	ReportDir string `toml:"report_dir"` // 报表文件所在目录
	DataDir   string `toml:"data_dir"`   // 历史库、导出文件目录
	History   bool   `toml:"history"`    // 是否记录加载历史
}

// ReportsConfig 报表关键字配置
type ReportsConfig struct {
	Docs      string `toml:"docs"`
	Flujo     string `toml:"flujo"`
	Historial string `toml:"historial"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, console
}

// WatchConfig 目录监听配置
type WatchConfig struct {
	Enabled    bool `toml:"enabled"`
	DebounceMS int  `toml:"debounce_ms"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8501,
			DevMode: false,
		},
		Data: DataConfig{
			ReportDir: ".",
			DataDir:   "data",
			History:   true,
		},
		Reports: ReportsConfig{
			Docs:      "Docs",
			Flujo:     "Flujo",
			Historial: "Historial",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMS: 500,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	server, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}

	_, ok = server["port"]
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

// DefaultPath 默认配置文件路径：可执行文件同目录下的 config.toml
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadFile 从指定路径加载配置；文件不存在时返回默认配置
func LoadFile(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnv(config)
	return config, info, nil
}

// 环境变量覆盖（用于部署 / 本地运行）
func applyEnv(config *AppConfig) {
	if v := os.Getenv("DASHBOARD_REPORT_DIR"); v != "" {
		config.Data.ReportDir = v
	}
	if v := os.Getenv("DASHBOARD_LOG_LEVEL"); v != "" {
		config.Log.Level = strings.ToLower(v)
	}
}

// SaveConfig 保存配置到指定路径
func SaveConfig(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveDir 相对路径按可执行文件目录解析，绝对路径原样返回
func ResolveDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, dir)
}

// EnsureDataDir 确保数据目录及子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDir(config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	for _, subdir := range []string{"exports"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

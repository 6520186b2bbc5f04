package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dvmian56/dashboard-control-anglo/internal/config"
	"github.com/Dvmian56/dashboard-control-anglo/internal/logger"
)

var (
	configPath string
	reportDir  string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Dashboard de Control Documental",
	Long: `Tablero de control documental: lee los reportes Docs / Flujo / Historial
más recientes de una carpeta y los presenta filtrados por contrato.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径 (默认: 可执行文件同目录 config.toml)")
	rootCmd.PersistentFlags().StringVarP(&reportDir, "report-dir", "d", "", "报表目录 (覆盖配置文件)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 debug|info|warn|error")

	// 无子命令时等同于 serve
	addServeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd, inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig 加载配置并应用公共命令行参数
func loadConfig() (*config.AppConfig, config.LoadConfigInfo) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, info, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败，使用默认配置: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{Path: path}
	}

	if reportDir != "" {
		cfg.Data.ReportDir = reportDir
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, info
}

func newLogger(cfg *config.AppConfig) *zap.Logger {
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		return zap.NewNop()
	}
	return log
}

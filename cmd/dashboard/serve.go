package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dvmian56/dashboard-control-anglo/internal/server"
	"github.com/Dvmian56/dashboard-control-anglo/internal/util"
)

var (
	port    int
	devMode bool
	noWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动看板服务并打开浏览器",
	RunE:  runServe,
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&port, "port", "p", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "开发模式 (不打开浏览器，gin debug 日志)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "不监听报表目录")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, info := loadConfig()

	// 命令行参数覆盖配置
	if port > 0 && !info.PortSpecified {
		cfg.Server.Port = port
	}
	if devMode {
		cfg.Server.DevMode = true
	}
	if noWatch {
		cfg.Watch.Enabled = false
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	fmt.Println("==========================================")
	fmt.Println("  Dashboard de Control Documental")
	fmt.Println("==========================================")

	srv, err := server.NewServer(cfg, log)
	if err != nil {
		return fmt.Errorf("初始化服务失败: %w", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.Int("port", cfg.Server.Port), zap.String("config", info.Path))
		errCh <- srv.Run(addr)
	}()

	// 打开浏览器
	if !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowser(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		_ = srv.Close()
		if err != nil {
			return fmt.Errorf("服务启动失败: %w", err)
		}
		return nil
	case <-quit:
	}

	fmt.Println("\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown failed", zap.Error(err))
	}
	return nil
}

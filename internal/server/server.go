package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dvmian56/dashboard-control-anglo/internal/api"
	"github.com/Dvmian56/dashboard-control-anglo/internal/config"
	"github.com/Dvmian56/dashboard-control-anglo/internal/dashboard"
	"github.com/Dvmian56/dashboard-control-anglo/internal/middleware"
	"github.com/Dvmian56/dashboard-control-anglo/internal/report"
	"github.com/Dvmian56/dashboard-control-anglo/internal/store"
	"github.com/Dvmian56/dashboard-control-anglo/internal/watch"
)

//go:embed all:dist
var staticFiles embed.FS

const (
	// historyKeep 保留的加载历史条数
	historyKeep = 5000
	// historyPruneEvery 每写入多少条检查一次保留条数
	historyPruneEvery = 300
)

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	log     *zap.Logger
	store   *store.Store
	hub     *watch.Hub
	watcher *watch.Watcher
	service *dashboard.Service
	api     *api.Handler

	httpSrv *http.Server
	cancel  context.CancelFunc
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	reportDir, err := filepath.Abs(cfg.Data.ReportDir)
	if err != nil {
		return nil, fmt.Errorf("resolve report dir: %w", err)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Warn("create data dir failed", zap.String("dir", cfg.Data.DataDir), zap.Error(err))
		dataDir = cfg.Data.DataDir
	}

	keywords := dashboard.Keywords{
		Docs:      cfg.Reports.Docs,
		Flujo:     cfg.Reports.Flujo,
		Historial: cfg.Reports.Historial,
	}
	loader := report.NewLoader(reportDir, report.WithLogger(log.Named("report")))

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		router: gin.New(),
		log:    log,
		cancel: cancel,
	}

	// 加载历史（SQLite）
	var recorder dashboard.Recorder
	var history api.History
	if cfg.Data.History {
		st, err := store.New(filepath.Join(dataDir, "history.db"))
		if err != nil {
			cancel()
			return nil, fmt.Errorf("open history store: %w", err)
		}
		if n, err := st.PruneLoads(ctx, historyKeep); err != nil {
			log.Warn("prune load history failed", zap.Error(err))
		} else if n > 0 {
			log.Info("pruned load history", zap.Int64("removed", n))
		}
		st.SetRetention(historyKeep, historyPruneEvery)
		s.store = st
		recorder = st
		history = st
	}

	// 目录监听
	if cfg.Watch.Enabled {
		s.hub = watch.NewHub()
		w, err := watch.New(reportDir,
			time.Duration(cfg.Watch.DebounceMS)*time.Millisecond,
			reportFilter(keywords), s.hub, log.Named("watch"))
		if err == nil {
			err = w.Start(ctx)
		}
		if err != nil {
			// 监听失败不影响看板，只是前端不再自动刷新
			log.Warn("report directory watch disabled", zap.String("dir", reportDir), zap.Error(err))
			if w != nil {
				w.Stop()
			}
		} else {
			s.watcher = w
		}
	}

	s.service = dashboard.NewService(loader, keywords, recorder, log.Named("dashboard"))
	s.api = api.NewHandler(s.service, api.Options{
		History:   history,
		Hub:       s.hub,
		ExportDir: filepath.Join(dataDir, "exports"),
		Logger:    log.Named("api"),
	})

	if err := s.setupRoutes(); err != nil {
		_ = s.Close()
		return nil, err
	}

	log.Info("server ready",
		zap.String("report_dir", reportDir),
		zap.String("data_dir", dataDir),
		zap.Bool("history", s.store != nil),
		zap.Bool("watch", s.watcher != nil))
	return s, nil
}

// reportFilter 只关心三类报表对应的文件
func reportFilter(k dashboard.Keywords) watch.Filter {
	keywords := []string{k.Docs, k.Flujo, k.Historial}
	return func(name string) bool {
		for _, kw := range keywords {
			if report.Accepted(name, kw) {
				return true
			}
		}
		return false
	}
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() error {
	s.router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(s.log.Named("http")),
		middleware.Recovery(s.log),
		middleware.CORS(),
	)

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	// 静态资源（embed）
	sub, err := fs.Sub(staticFiles, "dist")
	if err != nil {
		return fmt.Errorf("static files: %w", err)
	}

	assetsSub, err := fs.Sub(sub, "assets")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}
	s.router.StaticFS("/assets", http.FS(assetsSub))

	// favicon
	s.router.GET("/favicon.svg", func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "favicon.svg")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", data)
	})

	index := func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}

	// 首页
	s.router.GET("/", index)

	// SPA 路由 fallback（未知的 /api 路径仍返回 JSON 404）
	s.router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ruta no encontrada"})
			return
		}
		index(c)
	})
	return nil
}

// Handler 路由（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub 目录变更广播；未启用监听时为 nil
func (s *Server) Hub() *watch.Hub {
	return s.hub
}

// GetStore 获取存储（用于测试）；未启用历史时为 nil
func (s *Server) GetStore() *store.Store {
	return s.store
}

// Run 启动服务器（阻塞），Shutdown 后返回 nil
func (s *Server) Run(addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown 优雅关闭 HTTP 服务并释放资源
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpSrv != nil {
		err = s.httpSrv.Shutdown(ctx)
	}
	return errors.Join(err, s.Close())
}

// Close 停止监听、关闭推送与数据库
func (s *Server) Close() error {
	s.cancel()
	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher = nil
	}
	if s.hub != nil {
		s.hub.Close()
	}
	if s.store != nil {
		err := s.store.Close()
		s.store = nil
		return err
	}
	return nil
}

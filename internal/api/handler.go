package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dvmian56/dashboard-control-anglo/internal/dashboard"
	"github.com/Dvmian56/dashboard-control-anglo/internal/store"
	"github.com/Dvmian56/dashboard-control-anglo/internal/watch"
)

// queryContract 合同选择参数
const queryContract = "contrato"

// History 加载历史查询
type History interface {
	ListLoads(ctx context.Context, q store.LoadQuery) ([]store.LoadEntry, error)
}

// Handler API 处理器
type Handler struct {
	service   *dashboard.Service
	history   History
	hub       *watch.Hub
	exportDir string
	downloads *downloadStore
	log       *zap.Logger
}

// Options 可选依赖；为 nil 时对应接口返回 503
type Options struct {
	History   History
	Hub       *watch.Hub
	ExportDir string
	Logger    *zap.Logger
}

// NewHandler 创建 API 处理器
func NewHandler(service *dashboard.Service, opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		service:   service,
		history:   opts.History,
		hub:       opts.Hub,
		exportDir: opts.ExportDir,
		downloads: newDownloadStore(),
		log:       log,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 看板
	router.GET("/contracts", h.ListContracts)
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/reports/:kind", h.GetReport)

	// 加载历史
	router.GET("/history", h.ListHistory)

	// 目录变更推送
	router.GET("/events", h.Events)

	// 导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

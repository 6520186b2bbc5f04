package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dvmian56/dashboard-control-anglo/internal/dashboard"
	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
	"github.com/Dvmian56/dashboard-control-anglo/internal/report"
)

// ReportStatus 单份报表的加载状态
type ReportStatus struct {
	Keyword    string            `json:"keyword"`
	Found      bool              `json:"found"`
	Required   bool              `json:"required"`
	File       *report.Candidate `json:"file,omitempty"`
	Candidates int               `json:"candidates"`
	Rows       int               `json:"rows"`
	Error      string            `json:"error,omitempty"`
}

// StatusResponse 系统状态响应
type StatusResponse struct {
	Ready    bool                              `json:"ready"` // 主报表是否可用
	Message  string                            `json:"message,omitempty"`
	Keywords dashboard.Keywords                `json:"keywords"`
	Reports  map[model.ReportKind]ReportStatus `json:"reports"`
	LoadedAt time.Time                         `json:"loadedAt"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	snap := h.service.Snapshot(c.Request.Context())

	resp := StatusResponse{
		Ready:    snap.Reports.Docs != nil,
		Keywords: h.service.Keywords(),
		Reports:  make(map[model.ReportKind]ReportStatus, len(snap.Results)),
		LoadedAt: snap.LoadedAt,
	}
	if !resp.Ready {
		resp.Message = dashboard.WaitingMessage(resp.Keywords)
	}

	for kind, res := range snap.Results {
		st := ReportStatus{
			Keyword:    res.Keyword,
			Found:      res.Found,
			Required:   kind.Required(),
			File:       res.File,
			Candidates: res.Candidates,
			Rows:       res.Report.Len(),
		}
		if res.Err != nil && !errors.Is(res.Err, report.ErrNoCandidate) {
			st.Error = res.Err.Error()
		}
		resp.Reports[kind] = st
	}

	c.JSON(http.StatusOK, resp)
}

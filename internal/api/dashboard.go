package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dvmian56/dashboard-control-anglo/internal/contract"
	"github.com/Dvmian56/dashboard-control-anglo/internal/dashboard"
	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
)

func selectedContract(c *gin.Context) string {
	return c.DefaultQuery(queryContract, contract.All)
}

// ListContracts 合同选项
// GET /api/contracts
func (h *Handler) ListContracts(c *gin.Context) {
	snap := h.service.Snapshot(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"ready": snap.Reports.Docs != nil,
		"items": snap.Reports.Contracts(),
	})
}

// GetDashboard 看板视图（每次请求都重新加载报表）
// GET /api/dashboard?contrato=CP100
func (h *Handler) GetDashboard(c *gin.Context) {
	view := h.service.View(c.Request.Context(), selectedContract(c))
	c.JSON(http.StatusOK, view)
}

// reportResponse 单份报表（过滤后）
type reportResponse struct {
	Kind     model.ReportKind `json:"kind"`
	Selected string           `json:"selected"`
	Found    bool             `json:"found"`
	Source   string           `json:"source,omitempty"`
	Table    dashboard.Table  `json:"table"`
}

// GetReport 过滤后的单份报表
// GET /api/reports/:kind?contrato=CP100
func (h *Handler) GetReport(c *gin.Context) {
	kind := model.ReportKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reporte desconocido: " + string(kind)})
		return
	}

	selected := selectedContract(c)
	snap := h.service.Snapshot(c.Request.Context())

	resp := reportResponse{
		Kind:     kind,
		Selected: selected,
		Table:    dashboard.Table{Columns: []string{}, Rows: [][]any{}},
	}
	r := snap.Reports.Filtered(selected).Get(kind)
	if r != nil {
		resp.Found = true
		resp.Source = r.Source
		resp.Table.Columns, resp.Table.Rows = r.Table()
	}

	c.JSON(http.StatusOK, resp)
}

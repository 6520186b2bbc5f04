package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
	"github.com/Dvmian56/dashboard-control-anglo/internal/store"
)

// ListHistory 报表加载历史
// GET /api/history?kind=docs&limit=50
func (h *Handler) ListHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Historial de cargas deshabilitado"})
		return
	}

	q := store.LoadQuery{Limit: 50}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit inválido"})
			return
		}
		q.Limit = limit
	}
	if v := c.Query("kind"); v != "" {
		kind := model.ReportKind(v)
		if !kind.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind inválido"})
			return
		}
		q.Kind = kind
	}

	items, err := h.history.ListLoads(c.Request.Context(), q)
	if err != nil {
		h.log.Error("list load history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo leer el historial"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

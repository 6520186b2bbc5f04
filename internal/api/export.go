package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dvmian56/dashboard-control-anglo/internal/contract"
	"github.com/Dvmian56/dashboard-control-anglo/internal/export"
	"github.com/Dvmian56/dashboard-control-anglo/internal/logger"
)

const downloadTTL = 10 * time.Minute

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// exportFilename 导出文件名，例如 dashboard-CP100-20251103.xlsx
func exportFilename(selected string, now time.Time) string {
	label := "todos"
	if selected != contract.All && selected != "" {
		label = strings.Trim(unsafeFilename.ReplaceAllString(selected, "_"), "_")
		if label == "" {
			label = "contrato"
		}
	}
	return fmt.Sprintf("dashboard-%s-%s.xlsx", label, now.Format("20060102"))
}

func buildContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", filename, url.PathEscape(filename))
}

// Export 导出当前视图为 xlsx，返回一次性下载地址
// POST /api/export?contrato=CP100
func (h *Handler) Export(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)
	selected := selectedContract(c)

	snap := h.service.Snapshot(c.Request.Context())
	if snap.Reports.Docs == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "No hay reporte principal para exportar"})
		return
	}

	dir := h.exportDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Error("create export dir failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo preparar la exportación"})
		return
	}

	filename := exportFilename(selected, time.Now())
	path := filepath.Join(dir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), filename))

	f, err := os.Create(path)
	if err != nil {
		log.Error("create export file failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el archivo"})
		return
	}
	if err := export.Write(f, snap.Reports, selected); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		log.Error("export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Exportación fallida: " + err.Error()})
		return
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		log.Error("close export file failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el archivo"})
		return
	}

	token := h.downloads.put(path, filename, downloadTTL)
	log.Info("export ready", zap.String("contract", selected), zap.String("file", filename))

	prefix := strings.TrimSuffix(c.FullPath(), "/export")
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"filename":    filename,
		"downloadUrl": fmt.Sprintf("%s/export/download/%s", prefix, token),
		"expiresIn":   int(downloadTTL.Seconds()),
	})
}

// DownloadExport 下载导出的文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "El enlace de descarga expiró"})
		return
	}
	defer func() { _ = os.Remove(item.filePath) }()

	if _, err := os.Stat(item.filePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "El archivo exportado no existe"})
		return
	}

	c.Header("Content-Disposition", buildContentDisposition(item.filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)
}

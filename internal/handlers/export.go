package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/studiocrm/crm-api/internal/errors"
	"github.com/studiocrm/crm-api/internal/middleware"
	"github.com/studiocrm/crm-api/internal/services"
)

// ExportHandler serves CSV and ZIP exports. Admin only (enforced in routing).
type ExportHandler struct {
	exportService *services.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// RepStatsCSV streams the per-rep rollup as CSV.
func (h *ExportHandler) RepStatsCSV(c *gin.Context) {
	viewer, exists := middleware.GetViewer(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="rep_stats.csv"`)
	c.Status(http.StatusOK)

	if err := h.exportService.WriteRepStatsCSV(c.Writer, viewer); err != nil {
		// Headers are already out; nothing sensible left to send.
		_ = c.Error(err)
	}
}

// BackupZIP streams a ZIP archive of all entity dumps.
func (h *ExportHandler) BackupZIP(c *gin.Context) {
	viewer, exists := middleware.GetViewer(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="crm_backup.zip"`)
	c.Status(http.StatusOK)

	if err := h.exportService.WriteBackupZIP(c.Writer, viewer); err != nil {
		_ = c.Error(err)
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studiocrm/crm-api/internal/dto"
	apierrors "github.com/studiocrm/crm-api/internal/errors"
	"github.com/studiocrm/crm-api/internal/middleware"
	"github.com/studiocrm/crm-api/internal/services"
)

// DashboardHandler serves the aggregated dashboard and the rep-note mutation.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the stats, leaderboard and rep notes visible to the
// current user. Query: rep (admin only), show_archived.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	viewer, exists := middleware.GetViewer(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var rep *string
	if repQuery := c.Query("rep"); repQuery != "" {
		rep = &repQuery
	}
	showArchived := c.Query("show_archived") == "true"

	data, err := h.dashboardService.Build(viewer, services.ViewOptions{
		Rep:          rep,
		ShowArchived: showArchived,
	})
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(data))
}

// UpdateRepNote overwrites a rep's note. Admin only; other roles get 403
// and no state change.
func (h *DashboardHandler) UpdateRepNote(c *gin.Context) {
	type UpdateRepNoteRequest struct {
		Note string `json:"note"`
	}

	viewer, exists := middleware.GetViewer(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	rep := c.Param("rep")
	if rep == "" {
		apierrors.BadRequest(c, "Rep name required")
		return
	}

	var req UpdateRepNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.dashboardService.UpdateRepNote(viewer, rep, req.Note)
	if err != nil {
		if errors.Is(err, services.ErrRepNoteForbidden) {
			apierrors.Forbidden(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rep":        note.RepName,
		"note":       note.Note,
		"updated_at": note.UpdatedAt,
	})
}

package handlers

import (
	"net/http"

	"github.com/crewhq/crew-backend/internal/apperrors"
	"github.com/crewhq/crew-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves aggregate statistics.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns dashboard totals, role counts, and growth series.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	data, err := h.dashboardService.Stats()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

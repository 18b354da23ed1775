package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
)

// DashboardHandler handles teacher dashboard endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboardData godoc
// GET /api/v1/teacher/dashboard
// Returns stat cards, average total score per exam type and the latest results
// across the teacher's classes.
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	data, err := h.dashboardService.GetStats(c.Request.Context(), v)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, data)
}

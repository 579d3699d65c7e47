package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sekyere/schoolfees-api/internal/application/service"
	"github.com/sekyere/schoolfees-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting collection statistics
// @Summary Get dashboard statistics
// @Description Get billing and collection totals, optionally scoped to one academic year
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param academic_year query string false "Academic year, e.g. 2026/2027"
// @Success 200 {object} response.APIResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context(), c.Query("academic_year"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard statistics retrieved successfully", stats)
}

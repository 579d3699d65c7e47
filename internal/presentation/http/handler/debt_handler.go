package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/application/service"
	"github.com/sekyere/schoolfees-api/internal/presentation/http/dto/response"
)

// DebtHandler handles outstanding-balance HTTP requests
type DebtHandler struct {
	debtService *service.DebtService
}

// NewDebtHandler creates a new debt handler
func NewDebtHandler(debtService *service.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// SchoolFeeOwers handles listing school fee debtors for a class
// @Summary List school fee owers
// @Description Get per-student outstanding school fee balances for a class
// @Tags debts
// @Security BearerAuth
// @Produce json
// @Param classID path string true "Class ID"
// @Success 200 {object} response.APIResponse
// @Router /debts/classes/{classID} [get]
func (h *DebtHandler) SchoolFeeOwers(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classID"))
	if err != nil {
		response.BadRequest(c, "Invalid class ID")
		return
	}

	summaries, err := h.debtService.SchoolFeeOwers(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Debt summaries retrieved successfully", summaries)
}

// FeedingFeeOwers handles listing feeding fee debtors
// @Summary List feeding fee owers
// @Description Get per-student outstanding feeding fee balances, optionally filtered by class
// @Tags debts
// @Security BearerAuth
// @Produce json
// @Param class_id query string false "Class ID"
// @Success 200 {object} response.APIResponse
// @Router /debts/feeding [get]
func (h *DebtHandler) FeedingFeeOwers(c *gin.Context) {
	var classID *uuid.UUID
	if raw := c.Query("class_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid class ID")
			return
		}
		classID = &parsed
	}

	summaries, err := h.debtService.FeedingFeeOwers(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Debt summaries retrieved successfully", summaries)
}

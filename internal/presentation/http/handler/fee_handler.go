package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/application/service"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/internal/domain/enum"
	"github.com/sekyere/schoolfees-api/internal/domain/repository"
	"github.com/sekyere/schoolfees-api/internal/presentation/http/dto/request"
	"github.com/sekyere/schoolfees-api/internal/presentation/http/dto/response"
	"github.com/sekyere/schoolfees-api/pkg/dates"
	"github.com/sekyere/schoolfees-api/pkg/pagination"
)

// FeeHandler handles fee catalog, issuance and ledger HTTP requests
type FeeHandler struct {
	catalogService  *service.CatalogService
	ledgerService   *service.LedgerService
	issuanceService *service.IssuanceService
	roster          repository.RosterProvider
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(
	catalogService *service.CatalogService,
	ledgerService *service.LedgerService,
	issuanceService *service.IssuanceService,
	roster repository.RosterProvider,
) *FeeHandler {
	return &FeeHandler{
		catalogService:  catalogService,
		ledgerService:   ledgerService,
		issuanceService: issuanceService,
		roster:          roster,
	}
}

// IssueSchoolFees handles a school fee issuance run
// @Summary Issue school fees
// @Description Price the targeted classes and bill their active students
// @Tags fees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.IssueSchoolFeesRequest true "Issuance data"
// @Success 200 {object} response.APIResponse
// @Router /fees/structures/issue [post]
func (h *FeeHandler) IssueSchoolFees(c *gin.Context) {
	var req request.IssueSchoolFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.IssueSchoolFeesInput{
		AcademicYear: req.AcademicYear,
		Term:         req.Term,
		Components:   toFeeComponents(req.Components),
	}
	if req.ClassID != nil {
		classID, err := uuid.Parse(*req.ClassID)
		if err != nil {
			response.BadRequest(c, "Invalid class ID")
			return
		}
		input.ClassID = &classID
	}
	if req.DueDate != "" {
		dueDate, err := time.Parse(dates.ISODate, req.DueDate)
		if err != nil {
			response.BadRequest(c, "Invalid due date")
			return
		}
		input.DueDate = dueDate
	}

	report, err := h.issuanceService.IssueSchoolFees(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Issuance completed", gin.H{
		"outcome": report.Outcome(),
		"report":  report,
	})
}

// IssueFeedingFee handles a feeding fee issuance run
// @Summary Issue feeding fee
// @Description Create the termly feeding rate and bill all active students
// @Tags fees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.IssueFeedingFeeRequest true "Issuance data"
// @Success 200 {object} response.APIResponse
// @Router /fees/feeding/issue [post]
func (h *FeeHandler) IssueFeedingFee(c *gin.Context) {
	var req request.IssueFeedingFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := time.Parse(dates.ISODate, req.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start date")
		return
	}
	endDate, err := time.Parse(dates.ISODate, req.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid end date")
		return
	}

	report, err := h.issuanceService.IssueFeedingFee(c.Request.Context(), &service.IssueFeedingFeeInput{
		AcademicYear: req.AcademicYear,
		Term:         req.Term,
		DailyRate:    toCents(req.DailyRate),
		StartDate:    startDate,
		EndDate:      endDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Feeding fee issued", gin.H{
		"outcome": report.Outcome(),
		"report":  report,
	})
}

// ListFeeStructures handles listing catalog entries
// @Summary List fee structures
// @Tags fees
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /fees/structures [get]
func (h *FeeHandler) ListFeeStructures(c *gin.Context) {
	var req request.FeeStructureFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.FeeStructureFilterParams{
		AcademicYear: req.AcademicYear,
		Term:         req.Term,
	}
	if req.ClassID != "" {
		classID, err := uuid.Parse(req.ClassID)
		if err != nil {
			response.BadRequest(c, "Invalid class ID")
			return
		}
		params.ClassID = &classID
	}

	structures, err := h.catalogService.ListFeeStructures(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee structures retrieved successfully", structures)
}

// GetFeeStructure handles fetching one catalog entry
// @Summary Get fee structure
// @Tags fees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Fee structure ID"
// @Success 200 {object} response.APIResponse
// @Router /fees/structures/{id} [get]
func (h *FeeHandler) GetFeeStructure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee structure ID")
		return
	}

	fs, err := h.catalogService.GetFeeStructure(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee structure retrieved successfully", fs)
}

// DeleteFeeStructure handles deleting a catalog entry and its ledger records
// @Summary Delete fee structure
// @Tags fees
// @Security BearerAuth
// @Param id path string true "Fee structure ID"
// @Success 200 {object} response.APIResponse
// @Router /fees/structures/{id} [delete]
func (h *FeeHandler) DeleteFeeStructure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee structure ID")
		return
	}

	if err := h.catalogService.DeleteFeeStructure(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee structure deleted successfully", nil)
}

// ListFeedingRates handles listing feeding rates
// @Summary List feeding rates
// @Tags fees
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /fees/feeding [get]
func (h *FeeHandler) ListFeedingRates(c *gin.Context) {
	rates, err := h.catalogService.ListFeedingRates(c.Request.Context(), c.Query("academic_year"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Feeding rates retrieved successfully", rates)
}

// DeleteFeedingRate handles the delete-and-recreate flow for feeding rates
// @Summary Delete feeding rate
// @Tags fees
// @Security BearerAuth
// @Param id path string true "Feeding rate ID"
// @Success 200 {object} response.APIResponse
// @Router /fees/feeding/{id} [delete]
func (h *FeeHandler) DeleteFeedingRate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid feeding rate ID")
		return
	}

	if err := h.catalogService.DeleteFeedingRate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Feeding rate deleted successfully", nil)
}

// ListStudentFees handles listing school fee ledger records
// @Summary List student fees
// @Tags fees
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /fees/students [get]
func (h *FeeHandler) ListStudentFees(c *gin.Context) {
	var req request.StudentFeeFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.StudentFeeFilterParams{
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
	}
	if req.ClassID != "" {
		classID, err := uuid.Parse(req.ClassID)
		if err != nil {
			response.BadRequest(c, "Invalid class ID")
			return
		}
		params.ClassID = &classID
	}
	if req.StudentID != "" {
		studentID, err := uuid.Parse(req.StudentID)
		if err != nil {
			response.BadRequest(c, "Invalid student ID")
			return
		}
		params.StudentID = &studentID
	}
	if req.StructureID != "" {
		structureID, err := uuid.Parse(req.StructureID)
		if err != nil {
			response.BadRequest(c, "Invalid structure ID")
			return
		}
		params.StructureID = &structureID
	}

	var status *enum.FeeStatus
	if req.Status != "" {
		if s, ok := enum.ParseFeeStatus(req.Status); ok {
			status = &s
		}
	}

	result, err := h.ledgerService.ListStudentFees(c.Request.Context(), params, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Student fees retrieved successfully", result)
}

// ListStudentFeedingFees handles listing feeding fee ledger records for a rate
// @Summary List student feeding fees
// @Tags fees
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /fees/feeding/students [get]
func (h *FeeHandler) ListStudentFeedingFees(c *gin.Context) {
	rateID, err := uuid.Parse(c.Query("rate_id"))
	if err != nil {
		response.BadRequest(c, "rate_id query parameter is required")
		return
	}

	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.ledgerService.ListStudentFeedingFees(c.Request.Context(), rateID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Student feeding fees retrieved successfully", result)
}

// GetStudentStatement handles fetching one student's full fee statement
// @Summary Get student statement
// @Tags fees
// @Security BearerAuth
// @Produce json
// @Param studentID path string true "Student ID"
// @Success 200 {object} response.APIResponse
// @Router /fees/students/{studentID}/statement [get]
func (h *FeeHandler) GetStudentStatement(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentID"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	statement, err := h.ledgerService.GetStudentStatement(c.Request.Context(), h.roster, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement retrieved successfully", statement)
}

func toFeeComponents(req request.FeeComponentsRequest) entity.FeeComponents {
	return entity.FeeComponents{
		Tuition:       toCents(req.Tuition),
		Library:       toCents(req.Library),
		Lab:           toCents(req.Lab),
		Sports:        toCents(req.Sports),
		Transport:     toCents(req.Transport),
		Miscellaneous: toCents(req.Miscellaneous),
	}
}

// toCents converts a decimal amount to cents, rounding half up.
func toCents(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/application/service"
	"github.com/sekyere/schoolfees-api/internal/domain/enum"
	"github.com/sekyere/schoolfees-api/internal/presentation/http/dto/request"
	"github.com/sekyere/schoolfees-api/internal/presentation/http/dto/response"
	"github.com/sekyere/schoolfees-api/pkg/dates"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordFeePayment handles recording a school fee payment
// @Summary Record school fee payment
// @Description Append a payment against a student fee record
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.RecordPaymentRequest true "Payment data"
// @Success 201 {object} response.APIResponse
// @Router /payments/fees [post]
func (h *PaymentHandler) RecordFeePayment(c *gin.Context) {
	input, ok := h.bindPaymentInput(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.RecordFeePayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// RecordFeedingPayment handles recording a feeding fee payment
// @Summary Record feeding fee payment
// @Description Append a payment against a student feeding fee record
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.RecordPaymentRequest true "Payment data"
// @Success 201 {object} response.APIResponse
// @Router /payments/feeding [post]
func (h *PaymentHandler) RecordFeedingPayment(c *gin.Context) {
	input, ok := h.bindPaymentInput(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.RecordFeedingPayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// ListFeePayments handles listing payments on a student fee record
// @Summary List school fee payments
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Param studentFeeID path string true "Student fee ID"
// @Success 200 {object} response.APIResponse
// @Router /payments/fees/{studentFeeID} [get]
func (h *PaymentHandler) ListFeePayments(c *gin.Context) {
	studentFeeID, err := uuid.Parse(c.Param("studentFeeID"))
	if err != nil {
		response.BadRequest(c, "Invalid student fee ID")
		return
	}

	payments, err := h.paymentService.ListFeePayments(c.Request.Context(), studentFeeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// ListFeedingPayments handles listing payments on a student feeding fee record
// @Summary List feeding fee payments
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Param studentFeedingFeeID path string true "Student feeding fee ID"
// @Success 200 {object} response.APIResponse
// @Router /payments/feeding/{studentFeedingFeeID} [get]
func (h *PaymentHandler) ListFeedingPayments(c *gin.Context) {
	studentFeedingFeeID, err := uuid.Parse(c.Param("studentFeedingFeeID"))
	if err != nil {
		response.BadRequest(c, "Invalid student feeding fee ID")
		return
	}

	payments, err := h.paymentService.ListFeedingPayments(c.Request.Context(), studentFeedingFeeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

func (h *PaymentHandler) bindPaymentInput(c *gin.Context) (*service.RecordPaymentInput, bool) {
	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return nil, false
	}

	recordID, err := uuid.Parse(req.LedgerRecordID)
	if err != nil {
		response.BadRequest(c, "Invalid ledger record ID")
		return nil, false
	}

	method, ok := enum.ParsePaymentMethod(req.Method)
	if !ok {
		response.BadRequest(c, "Invalid payment method")
		return nil, false
	}

	input := &service.RecordPaymentInput{
		LedgerRecordID: recordID,
		Amount:         toCents(req.Amount),
		ReceiptNumber:  req.ReceiptNumber,
		Method:         method,
		RecordedBy:     GetUserID(c),
	}
	if req.PaymentDate != "" {
		paymentDate, err := time.Parse(dates.ISODate, req.PaymentDate)
		if err != nil {
			response.BadRequest(c, "Invalid payment date")
			return nil, false
		}
		input.PaymentDate = paymentDate
	}

	return input, true
}

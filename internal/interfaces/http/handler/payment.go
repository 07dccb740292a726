package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbooking "github.com/venuebook/backend/internal/application/booking"
	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/interfaces/http/dto"
)

// PaymentHandler handles payment-related API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *appbooking.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *appbooking.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// RecordPaymentRequest is the request body for recording a payment
type RecordPaymentRequest struct {
	BookingID     string          `json:"booking_id" binding:"required,uuid"`
	PaymentType   string          `json:"payment_type" binding:"required,oneof=ADVANCE FULL"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	PaidAmount    decimal.Decimal `json:"paid_amount" binding:"required"`
	BalanceDays   int             `json:"balance_days"`
}

// RecordPayment handles POST /payment
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation), dto.ErrCodeValidation, err.Error())
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		h.BadRequest(c, "invalid booking id")
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), appbooking.RecordPaymentRequest{
		BookingID:     bookingID,
		PaymentType:   booking.PaymentType(req.PaymentType),
		PaymentMethod: req.PaymentMethod,
		PaidAmount:    req.PaidAmount,
		BalanceDays:   req.BalanceDays,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PayBalance handles POST /payment/pay-balance/:bookingId
func (h *PaymentHandler) PayBalance(c *gin.Context) {
	bookingID, err := parseUUIDParam(c, "bookingId")
	if err != nil {
		h.BadRequest(c, "invalid booking id")
		return
	}

	if err := h.paymentService.PayRemainingBalance(c.Request.Context(), bookingID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"booking_id": bookingID, "balance_paid": true})
}

// GetBookingPayment handles GET /payment/booking/:id
func (h *PaymentHandler) GetBookingPayment(c *gin.Context) {
	bookingID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "invalid booking id")
		return
	}

	detail, err := h.paymentService.GetBookingDetail(c.Request.Context(), bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, detail)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbooking "github.com/venuebook/backend/internal/application/booking"
	"github.com/venuebook/backend/internal/interfaces/http/dto"
)

// ReferralHandler handles referral-related API endpoints
type ReferralHandler struct {
	BaseHandler
	referralService *appbooking.ReferralService
}

// NewReferralHandler creates a new ReferralHandler
func NewReferralHandler(referralService *appbooking.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// PayCommissionRequest is the request body for paying out a commission
type PayCommissionRequest struct {
	ReferralID string          `json:"referral_id" binding:"required,uuid"`
	BookingID  string          `json:"booking_id" binding:"required,uuid"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// List handles GET /referral
func (h *ReferralHandler) List(c *gin.Context) {
	listings, err := h.referralService.ListReferrals(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listings)
}

// PayCommission handles POST /referral/pay
func (h *ReferralHandler) PayCommission(c *gin.Context) {
	var req PayCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation), dto.ErrCodeValidation, err.Error())
		return
	}

	referralID, err := uuid.Parse(req.ReferralID)
	if err != nil {
		h.BadRequest(c, "invalid referral id")
		return
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		h.BadRequest(c, "invalid booking id")
		return
	}

	if err := h.referralService.PayCommission(c.Request.Context(), appbooking.PayCommissionRequest{
		ReferralID: referralID,
		BookingID:  bookingID,
		Amount:     req.Amount,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"referral_id": referralID,
		"booking_id":  bookingID,
		"status":      "Paid",
	})
}

package handler

import (
	"github.com/gin-gonic/gin"

	appbooking "github.com/venuebook/backend/internal/application/booking"
)

// CancellationHandler handles cancellation-related API endpoints
type CancellationHandler struct {
	BaseHandler
	cancellationService *appbooking.CancellationService
}

// NewCancellationHandler creates a new CancellationHandler
func NewCancellationHandler(cancellationService *appbooking.CancellationService) *CancellationHandler {
	return &CancellationHandler{
		cancellationService: cancellationService,
	}
}

// Cancel handles POST /cancellation/cancel/:bookingId
func (h *CancellationHandler) Cancel(c *gin.Context) {
	bookingID, err := parseUUIDParam(c, "bookingId")
	if err != nil {
		h.BadRequest(c, "invalid booking id")
		return
	}

	result, err := h.cancellationService.CancelBooking(c.Request.Context(), bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Details handles GET /cancellation/details/:bookingId
func (h *CancellationHandler) Details(c *gin.Context) {
	bookingID, err := parseUUIDParam(c, "bookingId")
	if err != nil {
		h.BadRequest(c, "invalid booking id")
		return
	}

	record, err := h.cancellationService.GetCancellation(c.Request.Context(), bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

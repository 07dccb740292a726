package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/infrastructure/telemetry"
)

// ExpiryService force-cancels bookings whose balance payment deadline has
// passed. This path deliberately skips the penalty and refund computation and
// writes no cancellation record: an expired advance booking is a forced
// transition, not a customer-initiated cancellation.
type ExpiryService struct {
	bookingRepo booking.BookingRepository
	logger      *zap.Logger
}

// NewExpiryService creates a new ExpiryService
func NewExpiryService(bookingRepo booking.BookingRepository, logger *zap.Logger) *ExpiryService {
	return &ExpiryService{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// ExpireOverdueBookings cancels all bookings still in ADVANCE whose balance
// due date has passed, in a single conditional batch update. The status and
// due-date predicate is reapplied at write time, so a booking whose balance
// was paid concurrently is left untouched. Returns the number of bookings
// cancelled.
func (s *ExpiryService) ExpireOverdueBookings(ctx context.Context) (int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "booking", "expire_overdue")
	defer span.End()

	count, err := s.bookingRepo.ExpireOverdue(ctx, time.Now())
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("expiry sweep failed", zap.Error(err))
		return 0, err
	}

	if count > 0 {
		s.logger.Info("expired overdue bookings", zap.Int64("cancelled", count))
	} else {
		s.logger.Debug("no overdue bookings to expire")
	}
	return count, nil
}

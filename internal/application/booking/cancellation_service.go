package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/domain/shared"
	"github.com/venuebook/backend/internal/domain/shared/valueobject"
	"github.com/venuebook/backend/internal/infrastructure/telemetry"
)

// CancellationService handles explicit booking cancellations and cancellation
// lookups. Penalty tiers come from the injected rule source, which may be a
// plain repository or a caching decorator around it.
type CancellationService struct {
	scope            TransactionScope
	ruleSource       booking.RuleSource
	cancellationRepo booking.CancellationRecordRepository
	logger           *zap.Logger
}

// NewCancellationService creates a new CancellationService
func NewCancellationService(
	scope TransactionScope,
	ruleSource booking.RuleSource,
	cancellationRepo booking.CancellationRecordRepository,
	logger *zap.Logger,
) *CancellationService {
	return &CancellationService{
		scope:            scope,
		ruleSource:       ruleSource,
		cancellationRepo: cancellationRepo,
		logger:           logger,
	}
}

// CancelBooking cancels a booking, computing penalty and refund from the
// applicable rule tier. Reads and writes form one transaction: on any error
// no cancellation record exists and the booking keeps its previous status.
func (s *CancellationService) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*CancellationResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cancellation", "cancel_booking")
	defer span.End()

	var result *CancellationResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		bkg, err := repos.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if bkg.IsCancelled() {
			return shared.ErrAlreadyCancelled
		}

		payment, err := repos.Payments().FindByBookingID(ctx, bookingID)
		if err != nil {
			if err == shared.ErrNotFound {
				return shared.ErrNoPayment
			}
			return fmt.Errorf("failed to load payment: %w", err)
		}
		if !payment.PaidAmount.IsPositive() {
			return shared.ErrInvalidAmount
		}

		rules, err := s.ruleSource.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to load cancellation rules: %w", err)
		}

		daysBefore := bkg.DaysBeforeEvent(time.Now())
		rule, err := booking.NewRuleSet(rules).Resolve(daysBefore)
		if err != nil {
			return err
		}

		paid := valueobject.NewMoneyINR(payment.PaidAmount)
		penalty, refund, err := booking.ComputePenalty(paid, rule.PenaltyPercent)
		if err != nil {
			return err
		}

		record, err := booking.NewCancellationRecord(
			bkg.ID, payment.ID,
			payment.PaidAmount, rule.PenaltyPercent,
			penalty.Amount(), refund.Amount(),
		)
		if err != nil {
			return err
		}

		if err := repos.Cancellations().Save(ctx, record); err != nil {
			return fmt.Errorf("failed to save cancellation record: %w", err)
		}
		if err := bkg.Cancel(); err != nil {
			return err
		}
		if err := repos.Bookings().SaveWithLock(ctx, bkg); err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}

		result = &CancellationResult{
			BookingID:      bkg.ID,
			TotalAmount:    record.TotalAmount,
			PenaltyPercent: record.PenaltyPercent,
			PenaltyAmount:  record.PenaltyAmount,
			RefundAmount:   record.RefundAmount,
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("penalty", result.PenaltyAmount.String()),
		zap.String("refund", result.RefundAmount.String()),
	)
	return result, nil
}

// GetCancellation returns the cancellation record of a booking
func (s *CancellationService) GetCancellation(ctx context.Context, bookingID uuid.UUID) (*booking.CancellationRecord, error) {
	return s.cancellationRepo.FindByBookingID(ctx, bookingID)
}

package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/domain/shared"
	"github.com/venuebook/backend/internal/infrastructure/telemetry"
)

// ReferralService handles referral commission payouts and listings
type ReferralService struct {
	scope        TransactionScope
	referralRepo booking.ReferralRepository
	logger       *zap.Logger
}

// NewReferralService creates a new ReferralService
func NewReferralService(
	scope TransactionScope,
	referralRepo booking.ReferralRepository,
	logger *zap.Logger,
) *ReferralService {
	return &ReferralService{
		scope:        scope,
		referralRepo: referralRepo,
		logger:       logger,
	}
}

// PayCommission records a one-time commission payout for a referral/booking
// pair and flips the referral to Paid, all in one transaction. The customer
// on the commission row is derived from the booking. A pair that was already
// paid out is rejected.
func (s *ReferralService) PayCommission(ctx context.Context, req PayCommissionRequest) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "referral", "pay_commission")
	defer span.End()

	if !req.Amount.IsPositive() {
		return shared.ErrInvalidAmount
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		referral, err := repos.Referrals().FindByID(ctx, req.ReferralID)
		if err != nil {
			return err
		}
		bkg, err := repos.Bookings().FindByID(ctx, req.BookingID)
		if err != nil {
			return err
		}

		if existing, err := repos.Commissions().FindByReferralAndBooking(ctx, req.ReferralID, req.BookingID); err == nil && existing != nil {
			return shared.NewDomainError("INVALID_STATE", "commission has already been paid for this referral and booking")
		} else if err != nil && err != shared.ErrNotFound {
			return fmt.Errorf("failed to check existing commission: %w", err)
		}

		if err := referral.MarkPaid(); err != nil {
			return err
		}

		commission, err := booking.NewReferralCommission(req.ReferralID, req.BookingID, bkg.CustomerID, req.Amount)
		if err != nil {
			return err
		}

		if err := repos.Commissions().Save(ctx, commission); err != nil {
			return fmt.Errorf("failed to save commission: %w", err)
		}
		if err := repos.Referrals().SaveWithLock(ctx, referral); err != nil {
			return fmt.Errorf("failed to save referral: %w", err)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.logger.Info("referral commission paid",
		zap.String("referral_id", req.ReferralID.String()),
		zap.String("booking_id", req.BookingID.String()),
		zap.String("amount", req.Amount.String()),
	)
	return nil
}

// ListReferrals returns all referrals joined with their booking and
// commission details
func (s *ReferralService) ListReferrals(ctx context.Context) ([]booking.ReferralListing, error) {
	return s.referralRepo.ListWithCommissions(ctx)
}

package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/domain/shared"
	"github.com/venuebook/backend/internal/infrastructure/telemetry"
)

// PaymentService handles payment recording and balance clearance for bookings
type PaymentService struct {
	scope       TransactionScope
	bookingRepo booking.BookingRepository
	paymentRepo booking.PaymentRepository
	receipts    ReceiptNotifier
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService. receipts may be nil when
// receipt generation is disabled.
func NewPaymentService(
	scope TransactionScope,
	bookingRepo booking.BookingRepository,
	paymentRepo booking.PaymentRepository,
	receipts ReceiptNotifier,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		scope:       scope,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		receipts:    receipts,
		logger:      logger,
	}
}

// RecordPayment records the payment for a booking and applies the matching
// state transition: ADVANCE payments set a balance due date, FULL payments
// (or payments covering the whole gross total) move the booking straight to
// INPROGRESS. All writes happen in one transaction.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*RecordPaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "record_payment")
	defer span.End()

	if !req.PaidAmount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if !req.PaymentType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "payment type must be ADVANCE or FULL")
	}

	dueDays := req.BalanceDays
	if dueDays <= 0 {
		dueDays = booking.DefaultBalanceDueDays
	}

	var (
		result   *RecordPaymentResult
		paidBkg  *booking.Booking
		paidPmnt *booking.Payment
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		bkg, err := repos.Bookings().FindByID(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if bkg.IsCancelled() {
			return shared.ErrInvalidState
		}

		if existing, err := repos.Payments().FindByBookingID(ctx, req.BookingID); err == nil && existing != nil {
			return shared.NewDomainError("INVALID_STATE", "a payment is already recorded for this booking")
		} else if err != nil && err != shared.ErrNotFound {
			return fmt.Errorf("failed to check existing payment: %w", err)
		}

		payment, err := booking.NewPayment(bkg.ID, req.PaymentType, req.PaymentMethod, bkg.GrossTotal, req.PaidAmount)
		if err != nil {
			return err
		}

		now := time.Now()
		balanceDueDays := 0
		if req.PaymentType == booking.PaymentTypeAdvance && payment.HasOutstandingBalance() {
			if err := bkg.ApplyAdvancePayment(now, dueDays); err != nil {
				return err
			}
			balanceDueDays = dueDays
		} else {
			// FULL payment, or an advance that already covers the total
			if err := bkg.ApplyFullPayment(); err != nil {
				return err
			}
		}

		if err := repos.Payments().Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		if err := repos.Bookings().SaveWithLock(ctx, bkg); err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}

		paidBkg = bkg
		paidPmnt = payment
		result = &RecordPaymentResult{
			PaymentID:      payment.ID,
			BalanceAmount:  payment.BalanceAmount,
			BookingStatus:  bkg.Status,
			BalanceDueDays: balanceDueDays,
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("booking_id", req.BookingID.String()),
		zap.String("payment_id", result.PaymentID.String()),
		zap.String("payment_type", string(req.PaymentType)),
		zap.String("status", result.BookingStatus.String()),
	)
	s.notifyReceipt(paidBkg, paidPmnt)
	return result, nil
}

// PayRemainingBalance settles the outstanding balance of a booking. The
// payment row is read under an exclusive row lock so two concurrent balance
// payments cannot both credit: exactly one succeeds, the other sees no
// balance remaining.
func (s *PaymentService) PayRemainingBalance(ctx context.Context, bookingID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "pay_remaining_balance")
	defer span.End()

	var (
		paidBkg  *booking.Booking
		paidPmnt *booking.Payment
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.Payments().FindByBookingIDForUpdate(ctx, bookingID)
		if err != nil {
			if err == shared.ErrNotFound {
				return shared.ErrNoPayment
			}
			return fmt.Errorf("failed to load payment: %w", err)
		}

		now := time.Now()
		if err := payment.ClearBalance(now); err != nil {
			return err
		}

		bkg, err := repos.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := bkg.ClearBalance(); err != nil {
			return err
		}

		if err := repos.Payments().Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		if err := repos.Bookings().SaveWithLock(ctx, bkg); err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}

		paidBkg = bkg
		paidPmnt = payment
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.logger.Info("balance cleared", zap.String("booking_id", bookingID.String()))
	s.notifyReceipt(paidBkg, paidPmnt)
	return nil
}

// GetBookingDetail returns the booking with its payment record, if any
func (s *PaymentService) GetBookingDetail(ctx context.Context, bookingID uuid.UUID) (*BookingDetail, error) {
	bkg, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	detail := &BookingDetail{
		BookingID:      bkg.ID,
		VenueName:      bkg.VenueName,
		CustomerID:     bkg.CustomerID,
		CustomerName:   bkg.CustomerName,
		EventDate:      bkg.EventDate,
		Status:         bkg.Status,
		BalanceDueDate: bkg.BalanceDueDate,
		GrossTotal:     bkg.GrossTotal,
	}

	payment, err := s.paymentRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		if err == shared.ErrNotFound {
			return detail, nil
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	detail.Payment = &PaymentDetail{
		PaymentID:         payment.ID,
		PaymentType:       payment.PaymentType,
		PaymentMethod:     payment.PaymentMethod,
		TotalAmount:       payment.TotalAmount,
		PaidAmount:        payment.PaidAmount,
		BalanceAmount:     payment.BalanceAmount,
		BalancePaidStatus: payment.BalancePaidStatus,
	}
	return detail, nil
}

func (s *PaymentService) notifyReceipt(b *booking.Booking, p *booking.Payment) {
	if s.receipts == nil || b == nil || p == nil {
		return
	}
	s.receipts.PaymentRecorded(b, p)
}

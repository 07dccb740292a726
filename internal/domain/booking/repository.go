package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	// FindByID finds a booking by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Save creates or updates a booking
	Save(ctx context.Context, b *Booking) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, b *Booking) error

	// ExpireOverdue force-cancels bookings still in ADVANCE whose balance due
	// date has passed. The predicate is applied at write time in a single
	// conditional update so a concurrently completed payment is never
	// overwritten. Returns the number of bookings cancelled.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByBookingID finds the active payment row of a booking
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error)

	// FindByBookingIDForUpdate finds the payment row of a booking under an
	// exclusive row lock held for the duration of the surrounding transaction
	FindByBookingIDForUpdate(ctx context.Context, bookingID uuid.UUID) (*Payment, error)

	// Save creates or updates a payment
	Save(ctx context.Context, p *Payment) error
}

// CancellationRecordRepository defines the interface for cancellation persistence
type CancellationRecordRepository interface {
	// FindByBookingID finds the cancellation record of a booking
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*CancellationRecord, error)

	// Save inserts a cancellation record
	Save(ctx context.Context, record *CancellationRecord) error
}

// RuleSource provides the current cancellation rule set.
// Implemented by the rule repository and by caching decorators around it.
type RuleSource interface {
	// FindAll returns all cancellation rules
	FindAll(ctx context.Context) ([]CancellationRule, error)
}

// CancellationRuleRepository defines the interface for rule persistence
type CancellationRuleRepository interface {
	RuleSource

	// Save creates or updates a rule (reference-data maintenance)
	Save(ctx context.Context, rule *CancellationRule) error
}

// ReferralRepository defines the interface for referral persistence
type ReferralRepository interface {
	// FindByID finds a referral by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Referral, error)

	// Save creates or updates a referral
	Save(ctx context.Context, r *Referral) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, r *Referral) error

	// ListWithCommissions returns referrals joined with their booking and
	// commission details
	ListWithCommissions(ctx context.Context) ([]ReferralListing, error)
}

// ReferralCommissionRepository defines the interface for commission persistence
type ReferralCommissionRepository interface {
	// FindByReferralAndBooking finds a commission for a referral/booking pair
	FindByReferralAndBooking(ctx context.Context, referralID, bookingID uuid.UUID) (*ReferralCommission, error)

	// Save inserts a commission record
	Save(ctx context.Context, c *ReferralCommission) error
}

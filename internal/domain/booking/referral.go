package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/venuebook/backend/internal/domain/shared"
)

// ReferralStatus tracks whether a referral's commission has been paid out
type ReferralStatus string

const (
	ReferralStatusPending ReferralStatus = "Pending"
	ReferralStatusPaid    ReferralStatus = "Paid"
)

// Referral represents a referral source eligible for a commission payout
type Referral struct {
	shared.BaseAggregateRoot
	ReferrerName  string         `json:"referrer_name"`
	ReferrerEmail string         `json:"referrer_email"`
	ReferrerPhone string         `json:"referrer_phone"`
	Status        ReferralStatus `json:"status"`
}

// NewReferral creates a referral in the Pending state
func NewReferral(name, email, phone string) (*Referral, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "referrer name is required")
	}
	return &Referral{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReferrerName:      name,
		ReferrerEmail:     email,
		ReferrerPhone:     phone,
		Status:            ReferralStatusPending,
	}, nil
}

// MarkPaid flips the referral to Paid. A referral that is already paid
// cannot be paid again.
func (r *Referral) MarkPaid() error {
	if r.Status == ReferralStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "referral commission has already been paid")
	}
	r.Status = ReferralStatusPaid
	r.UpdatedAt = time.Now()
	return nil
}

// ReferralCommission records a one-time commission payout for a referral and
// booking pair. The customer is derived from the booking, never caller-supplied.
type ReferralCommission struct {
	shared.BaseEntity
	ReferralID  uuid.UUID       `json:"referral_id"`
	BookingID   uuid.UUID       `json:"booking_id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
}

// NewReferralCommission creates a commission payout record
func NewReferralCommission(referralID, bookingID, customerID uuid.UUID, amount decimal.Decimal) (*ReferralCommission, error) {
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	return &ReferralCommission{
		BaseEntity:  shared.NewBaseEntity(),
		ReferralID:  referralID,
		BookingID:   bookingID,
		CustomerID:  customerID,
		Amount:      amount,
		PaymentDate: time.Now(),
	}, nil
}

// ReferralListing is a read model joining referrals with their booking and
// commission details for the listing endpoint.
type ReferralListing struct {
	ReferralID     uuid.UUID        `json:"referral_id"`
	ReferrerName   string           `json:"referrer_name"`
	Status         ReferralStatus   `json:"status"`
	BookingID      *uuid.UUID       `json:"booking_id,omitempty"`
	VenueName      string           `json:"venue_name,omitempty"`
	CustomerName   string           `json:"customer_name,omitempty"`
	CommissionPaid *decimal.Decimal `json:"commission_paid,omitempty"`
	PaymentDate    *time.Time       `json:"payment_date,omitempty"`
}

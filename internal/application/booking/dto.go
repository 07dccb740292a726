package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/venuebook/backend/internal/domain/booking"
)

// RecordPaymentRequest represents a request to record a payment on a booking
type RecordPaymentRequest struct {
	BookingID     uuid.UUID
	PaymentType   booking.PaymentType
	PaymentMethod string
	PaidAmount    decimal.Decimal
	// BalanceDays is the due period for the remaining balance of an advance
	// payment. Non-positive values fall back to the default of 3 days.
	BalanceDays int
}

// RecordPaymentResult represents the outcome of recording a payment
type RecordPaymentResult struct {
	PaymentID      uuid.UUID             `json:"payment_id"`
	BalanceAmount  decimal.Decimal       `json:"balance_amount"`
	BookingStatus  booking.BookingStatus `json:"booking_status"`
	BalanceDueDays int                   `json:"balance_due_days"`
}

// CancellationResult represents the financial outcome of a cancellation
type CancellationResult struct {
	BookingID      uuid.UUID       `json:"booking_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PenaltyPercent decimal.Decimal `json:"penalty_percent"`
	PenaltyAmount  decimal.Decimal `json:"penalty_amount"`
	RefundAmount   decimal.Decimal `json:"refund_amount"`
}

// BookingDetail is the booking plus payment view returned by the detail lookup
type BookingDetail struct {
	BookingID      uuid.UUID             `json:"booking_id"`
	VenueName      string                `json:"venue_name"`
	CustomerID     uuid.UUID             `json:"customer_id"`
	CustomerName   string                `json:"customer_name"`
	EventDate      time.Time             `json:"event_date"`
	Status         booking.BookingStatus `json:"status"`
	BalanceDueDate *time.Time            `json:"balance_due_date,omitempty"`
	GrossTotal     decimal.Decimal       `json:"gross_total"`
	Payment        *PaymentDetail        `json:"payment,omitempty"`
}

// PaymentDetail is the payment portion of a booking detail view
type PaymentDetail struct {
	PaymentID         uuid.UUID                 `json:"payment_id"`
	PaymentType       booking.PaymentType       `json:"payment_type"`
	PaymentMethod     string                    `json:"payment_method"`
	TotalAmount       decimal.Decimal           `json:"total_amount"`
	PaidAmount        decimal.Decimal           `json:"paid_amount"`
	BalanceAmount     decimal.Decimal           `json:"balance_amount"`
	BalancePaidStatus booking.BalancePaidStatus `json:"balance_paid_status"`
}

// PayCommissionRequest represents a request to pay out a referral commission
type PayCommissionRequest struct {
	ReferralID uuid.UUID
	BookingID  uuid.UUID
	Amount     decimal.Decimal
}

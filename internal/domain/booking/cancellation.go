package booking

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/venuebook/backend/internal/domain/shared"
)

// CancellationRecord captures the financial outcome of an explicit booking
// cancellation. Created exactly once per booking and immutable afterwards.
// Invariant: PenaltyAmount + RefundAmount == TotalAmount exactly.
type CancellationRecord struct {
	shared.BaseEntity
	BookingID      uuid.UUID       `json:"booking_id"`
	PaymentID      uuid.UUID       `json:"payment_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PenaltyPercent decimal.Decimal `json:"penalty_percent"`
	PenaltyAmount  decimal.Decimal `json:"penalty_amount"`
	RefundAmount   decimal.Decimal `json:"refund_amount"`
}

// NewCancellationRecord creates a cancellation record, enforcing that penalty
// and refund split the total exactly.
func NewCancellationRecord(bookingID, paymentID uuid.UUID, total, penaltyPercent, penalty, refund decimal.Decimal) (*CancellationRecord, error) {
	if !total.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if !penalty.Add(refund).Equal(total) {
		return nil, shared.NewDomainError("INVALID_INPUT", "penalty and refund must sum to the total amount")
	}
	return &CancellationRecord{
		BaseEntity:     shared.NewBaseEntity(),
		BookingID:      bookingID,
		PaymentID:      paymentID,
		TotalAmount:    total,
		PenaltyPercent: penaltyPercent,
		PenaltyAmount:  penalty,
		RefundAmount:   refund,
	}, nil
}

package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/venuebook/backend/internal/domain/shared"
)

// PaymentType distinguishes an advance (partial) payment from a full payment
type PaymentType string

const (
	PaymentTypeAdvance PaymentType = "ADVANCE"
	PaymentTypeFull    PaymentType = "FULL"
)

// IsValid checks if the payment type is valid
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeAdvance || t == PaymentTypeFull
}

// BalancePaidStatus tracks whether the outstanding balance has been cleared
type BalancePaidStatus string

const (
	BalancePaidStatusPending BalancePaidStatus = "pending"
	BalancePaidStatusClear   BalancePaidStatus = "clear"
)

// TransactionStatusSuccess marks a committed payment row
const TransactionStatusSuccess = "SUCCESS"

// Payment represents the single active payment record of a booking.
// Invariant after every committed write: PaidAmount + BalanceAmount == TotalAmount.
type Payment struct {
	shared.BaseAggregateRoot
	BookingID         uuid.UUID         `json:"booking_id"`
	PaymentType       PaymentType       `json:"payment_type"`
	PaymentMethod     string            `json:"payment_method"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	PaidAmount        decimal.Decimal   `json:"paid_amount"`
	BalanceAmount     decimal.Decimal   `json:"balance_amount"`
	BalancePaidAmount decimal.Decimal   `json:"balance_paid_amount"`
	BalancePaidDate   *time.Time        `json:"balance_paid_date"`
	BalancePaidStatus BalancePaidStatus `json:"balance_paid_status"`
	TransactionStatus string            `json:"transaction_status"`
}

// NewPayment creates the payment record for a booking. The balance is derived
// from the booking's gross total; a non-positive balance means the booking is
// fully paid from the start.
func NewPayment(bookingID uuid.UUID, paymentType PaymentType, method string, grossTotal, paidAmount decimal.Decimal) (*Payment, error) {
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "payment type must be ADVANCE or FULL")
	}
	if !paidAmount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}

	balance := grossTotal.Sub(paidAmount)
	balanceStatus := BalancePaidStatusPending
	if !balance.IsPositive() {
		balanceStatus = BalancePaidStatusClear
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BookingID:         bookingID,
		PaymentType:       paymentType,
		PaymentMethod:     method,
		TotalAmount:       grossTotal,
		PaidAmount:        paidAmount,
		BalanceAmount:     balance,
		BalancePaidAmount: decimal.Zero,
		BalancePaidStatus: balanceStatus,
		TransactionStatus: TransactionStatusSuccess,
	}, nil
}

// HasOutstandingBalance returns true if money is still owed on this payment
func (p *Payment) HasOutstandingBalance() bool {
	return p.BalanceAmount.IsPositive()
}

// ClearBalance settles the outstanding balance in place. The cleared amount
// is recorded in BalancePaidAmount and paid/balance are reconciled so the
// payment invariant holds.
func (p *Payment) ClearBalance(now time.Time) error {
	if !p.HasOutstandingBalance() {
		return shared.ErrNoBalance
	}
	p.BalancePaidAmount = p.BalanceAmount
	p.PaidAmount = p.TotalAmount
	p.BalanceAmount = decimal.Zero
	p.BalancePaidDate = &now
	p.BalancePaidStatus = BalancePaidStatusClear
	p.UpdatedAt = time.Now()
	return nil
}

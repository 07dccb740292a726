package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/venuebook/backend/internal/domain/shared"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusCreated    BookingStatus = "CREATED"    // Booked, no payment recorded yet
	BookingStatusAdvance    BookingStatus = "ADVANCE"    // Advance paid, balance outstanding
	BookingStatusInProgress BookingStatus = "INPROGRESS" // Fully paid
	BookingStatusCancelled  BookingStatus = "CANCELLED"  // Terminal, no transition out
)

// IsValid checks if the status is a valid BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusCreated, BookingStatusAdvance, BookingStatusInProgress, BookingStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the booking is in a terminal state
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled
}

// CanAcceptPayment returns true if payments can be recorded in this status
func (s BookingStatus) CanAcceptPayment() bool {
	return s != BookingStatusCancelled
}

// Booking represents a venue booking aggregate root.
// The booking is the sole owner of its status and balance due date;
// every transition goes through the methods below.
type Booking struct {
	shared.BaseAggregateRoot
	VenueName      string          `json:"venue_name"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	EventDate      time.Time       `json:"event_date"`
	Status         BookingStatus   `json:"status"`
	BalanceDueDate *time.Time      `json:"balance_due_date"`
	GrossTotal     decimal.Decimal `json:"gross_total"`
}

// NewBooking creates a new booking in CREATED state
func NewBooking(venueName string, customerID uuid.UUID, customerName string, eventDate time.Time, grossTotal decimal.Decimal) (*Booking, error) {
	if venueName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "venue name cannot be empty")
	}
	if !grossTotal.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	return &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VenueName:         venueName,
		CustomerID:        customerID,
		CustomerName:      customerName,
		EventDate:         eventDate,
		Status:            BookingStatusCreated,
		GrossTotal:        grossTotal,
	}, nil
}

// ApplyAdvancePayment transitions the booking to ADVANCE and sets the
// balance due date to now + dueDays. Non-positive dueDays fall back to
// DefaultBalanceDueDays.
func (b *Booking) ApplyAdvancePayment(now time.Time, dueDays int) error {
	if !b.Status.CanAcceptPayment() {
		return shared.ErrInvalidState
	}
	if dueDays <= 0 {
		dueDays = DefaultBalanceDueDays
	}
	due := now.AddDate(0, 0, dueDays)
	b.Status = BookingStatusAdvance
	b.BalanceDueDate = &due
	b.UpdatedAt = time.Now()
	return nil
}

// ApplyFullPayment transitions the booking to INPROGRESS and clears any
// balance due date.
func (b *Booking) ApplyFullPayment() error {
	if !b.Status.CanAcceptPayment() {
		return shared.ErrInvalidState
	}
	b.Status = BookingStatusInProgress
	b.BalanceDueDate = nil
	b.UpdatedAt = time.Now()
	return nil
}

// ClearBalance marks the outstanding balance as settled, moving the booking
// to INPROGRESS and clearing the due date.
func (b *Booking) ClearBalance() error {
	if b.Status == BookingStatusCancelled {
		return shared.ErrAlreadyCancelled
	}
	b.Status = BookingStatusInProgress
	b.BalanceDueDate = nil
	b.UpdatedAt = time.Now()
	return nil
}

// Cancel transitions the booking to CANCELLED. Re-cancellation is rejected.
func (b *Booking) Cancel() error {
	if b.Status == BookingStatusCancelled {
		return shared.ErrAlreadyCancelled
	}
	b.Status = BookingStatusCancelled
	b.UpdatedAt = time.Now()
	return nil
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// DaysBeforeEvent returns the whole-day offset between now and the event date
func (b *Booking) DaysBeforeEvent(now time.Time) int {
	return DaysBeforeEvent(b.EventDate, now)
}

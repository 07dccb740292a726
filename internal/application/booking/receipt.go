package booking

import (
	"github.com/venuebook/backend/internal/domain/booking"
)

// ReceiptNotifier is told about committed payments so a receipt document can
// be produced. Implementations must not block and must never fail the caller:
// receipt generation is a side effect outside the payment transaction.
type ReceiptNotifier interface {
	PaymentRecorded(b *booking.Booking, p *booking.Payment)
}

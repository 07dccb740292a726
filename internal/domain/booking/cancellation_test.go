package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuebook/backend/internal/domain/shared"
)

func TestNewCancellationRecord(t *testing.T) {
	bookingID := uuid.New()
	paymentID := uuid.New()

	t.Run("creates record when penalty and refund split the total", func(t *testing.T) {
		rec, err := NewCancellationRecord(bookingID, paymentID,
			decimal.NewFromInt(3000), decimal.NewFromInt(20),
			decimal.NewFromInt(600), decimal.NewFromInt(2400))
		require.NoError(t, err)

		assert.Equal(t, bookingID, rec.BookingID)
		assert.Equal(t, paymentID, rec.PaymentID)
		assert.True(t, rec.PenaltyAmount.Add(rec.RefundAmount).Equal(rec.TotalAmount))
	})

	t.Run("rejects mismatched split", func(t *testing.T) {
		_, err := NewCancellationRecord(bookingID, paymentID,
			decimal.NewFromInt(3000), decimal.NewFromInt(20),
			decimal.NewFromInt(600), decimal.NewFromInt(2399))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive total", func(t *testing.T) {
		_, err := NewCancellationRecord(bookingID, paymentID,
			decimal.Zero, decimal.NewFromInt(20), decimal.Zero, decimal.Zero)
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
	})
}

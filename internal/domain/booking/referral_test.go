package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuebook/backend/internal/domain/shared"
)

func TestReferralMarkPaid(t *testing.T) {
	r := &Referral{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReferrerName:      "Vikram Shetty",
		Status:            ReferralStatusPending,
	}

	require.NoError(t, r.MarkPaid())
	assert.Equal(t, ReferralStatusPaid, r.Status)

	err := r.MarkPaid()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestNewReferralCommission(t *testing.T) {
	t.Run("creates commission with payment date", func(t *testing.T) {
		c, err := NewReferralCommission(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.False(t, c.PaymentDate.IsZero())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewReferralCommission(uuid.New(), uuid.New(), uuid.New(), decimal.Zero)
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
	})
}

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/domain/shared"
)

func TestGormReferralRepository_FindByID(t *testing.T) {
	t.Run("finds existing referral", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormReferralRepository(gormDB)

		referralID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "referrer_name", "referrer_email", "referrer_phone", "status", "version",
		}).AddRow(referralID, "Rohit Sharma", "rohit@example.com", "9876543210", "Pending", 1)

		mock.ExpectQuery(`SELECT \* FROM "referrals" WHERE id = \$1`).
			WithArgs(referralID, 1).
			WillReturnRows(rows)

		ref, err := repo.FindByID(context.Background(), referralID)

		assert.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, referralID, ref.ID)
		assert.Equal(t, "Rohit Sharma", ref.ReferrerName)
		assert.Equal(t, booking.ReferralStatusPending, ref.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing referral", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormReferralRepository(gormDB)

		referralID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "referrals" WHERE id = \$1`).
			WithArgs(referralID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		ref, err := repo.FindByID(context.Background(), referralID)

		assert.Nil(t, ref)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReferralRepository_ListWithCommissions(t *testing.T) {
	t.Run("maps joined rows into listings", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormReferralRepository(gormDB)

		paidID := uuid.New()
		pendingID := uuid.New()
		bookingID := uuid.New()
		paymentDate := time.Date(2026, 8, 20, 11, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{
			"referral_id", "referrer_name", "status",
			"booking_id", "venue_name", "customer_name", "commission_paid", "payment_date",
		}).
			AddRow(paidID, "Rohit Sharma", "Paid",
				bookingID, "Lakeside Lawns", "Meera Pillai", decimal.NewFromInt(500), paymentDate).
			AddRow(pendingID, "Anita Desai", "Pending",
				nil, nil, nil, nil, nil)

		mock.ExpectQuery(`SELECT (.+) FROM referrals AS r LEFT JOIN referral_commissions c`).
			WillReturnRows(rows)

		listings, err := repo.ListWithCommissions(context.Background())

		assert.NoError(t, err)
		require.Len(t, listings, 2)

		paid := listings[0]
		assert.Equal(t, paidID, paid.ReferralID)
		assert.Equal(t, booking.ReferralStatusPaid, paid.Status)
		require.NotNil(t, paid.BookingID)
		assert.Equal(t, bookingID, *paid.BookingID)
		assert.Equal(t, "Lakeside Lawns", paid.VenueName)
		assert.Equal(t, "Meera Pillai", paid.CustomerName)
		require.NotNil(t, paid.CommissionPaid)
		assert.True(t, paid.CommissionPaid.Equal(decimal.NewFromInt(500)))

		pending := listings[1]
		assert.Equal(t, pendingID, pending.ReferralID)
		assert.Equal(t, booking.ReferralStatusPending, pending.Status)
		assert.Nil(t, pending.BookingID)
		assert.Empty(t, pending.VenueName)
		assert.Nil(t, pending.CommissionPaid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no referrals yields empty slice", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormReferralRepository(gormDB)

		rows := sqlmock.NewRows([]string{
			"referral_id", "referrer_name", "status",
			"booking_id", "venue_name", "customer_name", "commission_paid", "payment_date",
		})

		mock.ExpectQuery(`SELECT (.+) FROM referrals AS r LEFT JOIN referral_commissions c`).
			WillReturnRows(rows)

		listings, err := repo.ListWithCommissions(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, listings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReferralCommissionRepository_FindByReferralAndBooking(t *testing.T) {
	t.Run("finds existing payout", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormReferralCommissionRepository(gormDB)

		commissionID := uuid.New()
		referralID := uuid.New()
		bookingID := uuid.New()
		customerID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "referral_id", "booking_id", "customer_id", "amount", "payment_date",
		}).AddRow(commissionID, referralID, bookingID, customerID,
			decimal.NewFromInt(500), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "referral_commissions" WHERE referral_id = \$1 AND booking_id = \$2`).
			WithArgs(referralID, bookingID, 1).
			WillReturnRows(rows)

		c, err := repo.FindByReferralAndBooking(context.Background(), referralID, bookingID)

		assert.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, referralID, c.ReferralID)
		assert.Equal(t, bookingID, c.BookingID)
		assert.Equal(t, customerID, c.CustomerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when pair has no payout", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormReferralCommissionRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "referral_commissions" WHERE referral_id = \$1 AND booking_id = \$2`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		c, err := repo.FindByReferralAndBooking(context.Background(), uuid.New(), uuid.New())

		assert.Nil(t, c)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

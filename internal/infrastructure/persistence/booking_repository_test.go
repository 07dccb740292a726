package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/domain/shared"
)

// newMockDB creates a GORM DB backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormBookingRepository_FindByID(t *testing.T) {
	t.Run("finds existing booking", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(gormDB)

		bookingID := uuid.New()
		customerID := uuid.New()
		eventDate := time.Now().AddDate(0, 0, 30)

		rows := sqlmock.NewRows([]string{
			"id", "venue_name", "customer_id", "customer_name",
			"event_date", "status", "balance_due_date", "gross_total", "version",
		}).AddRow(
			bookingID, "Grand Pavilion", customerID, "Asha Nair",
			eventDate, "CREATED", nil, decimal.NewFromInt(10000), 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1`).
			WithArgs(bookingID, 1).
			WillReturnRows(rows)

		b, err := repo.FindByID(context.Background(), bookingID)

		assert.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, bookingID, b.ID)
		assert.Equal(t, "Grand Pavilion", b.VenueName)
		assert.Equal(t, booking.BookingStatusCreated, b.Status)
		assert.True(t, b.GrossTotal.Equal(decimal.NewFromInt(10000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing booking", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(gormDB)

		bookingID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1`).
			WithArgs(bookingID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		b, err := repo.FindByID(context.Background(), bookingID)

		assert.Nil(t, b)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookingRepository_SaveWithLock(t *testing.T) {
	newBooking := func(t *testing.T) *booking.Booking {
		t.Helper()
		b, err := booking.NewBooking("Grand Pavilion", uuid.New(), "Asha Nair",
			time.Now().AddDate(0, 0, 30), decimal.NewFromInt(10000))
		require.NoError(t, err)
		return b
	}

	t.Run("updates row guarded by version", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(gormDB)

		b := newBooking(t)

		mock.ExpectExec(`UPDATE "bookings" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), b)

		assert.NoError(t, err)
		assert.Equal(t, 2, b.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports conflict when version moved on", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(gormDB)

		b := newBooking(t)

		mock.ExpectExec(`UPDATE "bookings" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), b)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookingRepository_ExpireOverdue(t *testing.T) {
	t.Run("returns number of expired bookings", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(gormDB)

		mock.ExpectExec(`UPDATE "bookings" SET`).
			WillReturnResult(sqlmock.NewResult(0, 3))

		count, err := repo.ExpireOverdue(context.Background(), time.Now())

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bumps version so stale aggregates lose the lock", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(gormDB)

		mock.ExpectExec(`UPDATE "bookings" SET .*"version"=version \+ 1`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		count, err := repo.ExpireOverdue(context.Background(), time.Now())

		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing overdue", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBookingRepository(gormDB)

		mock.ExpectExec(`UPDATE "bookings" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		count, err := repo.ExpireOverdue(context.Background(), time.Now())

		assert.NoError(t, err)
		assert.Zero(t, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

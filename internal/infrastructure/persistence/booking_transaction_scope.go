package persistence

import (
	"context"

	"gorm.io/gorm"

	appbooking "github.com/venuebook/backend/internal/application/booking"
	"github.com/venuebook/backend/internal/domain/booking"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appbooking.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Bookings returns the booking repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Bookings() booking.BookingRepository {
	return NewGormBookingRepository(r.tx)
}

// Payments returns the payment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Payments() booking.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// Cancellations returns the cancellation record repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Cancellations() booking.CancellationRecordRepository {
	return NewGormCancellationRecordRepository(r.tx)
}

// Referrals returns the referral repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Referrals() booking.ReferralRepository {
	return NewGormReferralRepository(r.tx)
}

// Commissions returns the commission repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Commissions() booking.ReferralCommissionRepository {
	return NewGormReferralCommissionRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appbooking.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appbooking.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

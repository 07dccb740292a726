package booking

import (
	"context"

	"github.com/venuebook/backend/internal/domain/booking"
)

// TransactionScope provides transactional access to the booking repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all booking repositories within
// a transaction. All repositories returned share the same underlying database
// transaction, so a state-machine operation's reads and writes form one atomic
// unit.
type TransactionalRepositories interface {
	// Bookings returns the booking repository scoped to the current transaction
	Bookings() booking.BookingRepository
	// Payments returns the payment repository scoped to the current transaction
	Payments() booking.PaymentRepository
	// Cancellations returns the cancellation record repository scoped to the current transaction
	Cancellations() booking.CancellationRecordRepository
	// Referrals returns the referral repository scoped to the current transaction
	Referrals() booking.ReferralRepository
	// Commissions returns the commission repository scoped to the current transaction
	Commissions() booking.ReferralCommissionRepository
}

// NoOpTransactionScope executes the function directly against the supplied
// repositories without a real transaction. Useful for testing.
type NoOpTransactionScope struct {
	BookingRepo      booking.BookingRepository
	PaymentRepo      booking.PaymentRepository
	CancellationRepo booking.CancellationRecordRepository
	ReferralRepo     booking.ReferralRepository
	CommissionRepo   booking.ReferralCommissionRepository
}

// Execute runs fn directly without transaction semantics
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(noOpRepositories{s})
}

type noOpRepositories struct {
	scope *NoOpTransactionScope
}

func (r noOpRepositories) Bookings() booking.BookingRepository { return r.scope.BookingRepo }
func (r noOpRepositories) Payments() booking.PaymentRepository { return r.scope.PaymentRepo }
func (r noOpRepositories) Cancellations() booking.CancellationRecordRepository {
	return r.scope.CancellationRepo
}
func (r noOpRepositories) Referrals() booking.ReferralRepository { return r.scope.ReferralRepo }
func (r noOpRepositories) Commissions() booking.ReferralCommissionRepository {
	return r.scope.CommissionRepo
}

// Ensure NoOpTransactionScope implements TransactionScope
var _ TransactionScope = (*NoOpTransactionScope)(nil)

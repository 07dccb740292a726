package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/venuebook/backend/internal/domain/booking"
)

// MockBookingRepository is a mock implementation of booking.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) SaveWithLock(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository is a mock implementation of booking.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*booking.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByBookingIDForUpdate(ctx context.Context, bookingID uuid.UUID) (*booking.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *booking.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockCancellationRecordRepository is a mock implementation of booking.CancellationRecordRepository
type MockCancellationRecordRepository struct {
	mock.Mock
}

func (m *MockCancellationRecordRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*booking.CancellationRecord, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.CancellationRecord), args.Error(1)
}

func (m *MockCancellationRecordRepository) Save(ctx context.Context, record *booking.CancellationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockRuleSource is a mock implementation of booking.RuleSource
type MockRuleSource struct {
	mock.Mock
}

func (m *MockRuleSource) FindAll(ctx context.Context) ([]booking.CancellationRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.CancellationRule), args.Error(1)
}

// MockReferralRepository is a mock implementation of booking.ReferralRepository
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Referral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Referral), args.Error(1)
}

func (m *MockReferralRepository) Save(ctx context.Context, r *booking.Referral) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReferralRepository) SaveWithLock(ctx context.Context, r *booking.Referral) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReferralRepository) ListWithCommissions(ctx context.Context) ([]booking.ReferralListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.ReferralListing), args.Error(1)
}

// MockReferralCommissionRepository is a mock implementation of booking.ReferralCommissionRepository
type MockReferralCommissionRepository struct {
	mock.Mock
}

func (m *MockReferralCommissionRepository) FindByReferralAndBooking(ctx context.Context, referralID, bookingID uuid.UUID) (*booking.ReferralCommission, error) {
	args := m.Called(ctx, referralID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.ReferralCommission), args.Error(1)
}

func (m *MockReferralCommissionRepository) Save(ctx context.Context, c *booking.ReferralCommission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockReceiptNotifier records receipt notifications for assertions
type MockReceiptNotifier struct {
	mock.Mock
}

func (m *MockReceiptNotifier) PaymentRecorded(b *booking.Booking, p *booking.Payment) {
	m.Called(b, p)
}

// newScope wires mock repositories into a pass-through transaction scope
func newScope(
	bookings *MockBookingRepository,
	payments *MockPaymentRepository,
	cancellations *MockCancellationRecordRepository,
	referrals *MockReferralRepository,
	commissions *MockReferralCommissionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		BookingRepo:      bookings,
		PaymentRepo:      payments,
		CancellationRepo: cancellations,
		ReferralRepo:     referrals,
		CommissionRepo:   commissions,
	}
}

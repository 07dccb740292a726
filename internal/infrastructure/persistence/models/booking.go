package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebook/backend/internal/domain/booking"
)

// BookingModel is the persistence model for the Booking aggregate root.
type BookingModel struct {
	AggregateModel
	VenueName      string                `gorm:"type:varchar(200);not null"`
	CustomerID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	CustomerName   string                `gorm:"type:varchar(200);not null"`
	EventDate      time.Time             `gorm:"not null;index"`
	Status         booking.BookingStatus `gorm:"type:varchar(20);not null;default:'CREATED';index"`
	BalanceDueDate *time.Time            `gorm:"index"`
	GrossTotal     decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking entity.
func (m *BookingModel) ToDomain() *booking.Booking {
	return &booking.Booking{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		VenueName:         m.VenueName,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		EventDate:         m.EventDate,
		Status:            m.Status,
		BalanceDueDate:    m.BalanceDueDate,
		GrossTotal:        m.GrossTotal,
	}
}

// FromDomain populates the persistence model from a domain Booking entity.
func (m *BookingModel) FromDomain(b *booking.Booking) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.VenueName = b.VenueName
	m.CustomerID = b.CustomerID
	m.CustomerName = b.CustomerName
	m.EventDate = b.EventDate
	m.Status = b.Status
	m.BalanceDueDate = b.BalanceDueDate
	m.GrossTotal = b.GrossTotal
}

// BookingModelFromDomain creates a new persistence model from a domain Booking.
func BookingModelFromDomain(b *booking.Booking) *BookingModel {
	m := &BookingModel{}
	m.FromDomain(b)
	return m
}

// PaymentModel is the persistence model for the Payment aggregate root.
// A booking carries at most one payment row.
type PaymentModel struct {
	AggregateModel
	BookingID         uuid.UUID                 `gorm:"type:uuid;not null;uniqueIndex"`
	PaymentType       booking.PaymentType       `gorm:"type:varchar(20);not null"`
	PaymentMethod     string                    `gorm:"type:varchar(50);not null"`
	TotalAmount       decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	PaidAmount        decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	BalanceAmount     decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	BalancePaidAmount decimal.Decimal           `gorm:"type:decimal(18,2);not null;default:0"`
	BalancePaidDate   *time.Time
	BalancePaidStatus booking.BalancePaidStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	TransactionStatus string                    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *booking.Payment {
	return &booking.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BookingID:         m.BookingID,
		PaymentType:       m.PaymentType,
		PaymentMethod:     m.PaymentMethod,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		BalanceAmount:     m.BalanceAmount,
		BalancePaidAmount: m.BalancePaidAmount,
		BalancePaidDate:   m.BalancePaidDate,
		BalancePaidStatus: m.BalancePaidStatus,
		TransactionStatus: m.TransactionStatus,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *booking.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.BookingID = p.BookingID
	m.PaymentType = p.PaymentType
	m.PaymentMethod = p.PaymentMethod
	m.TotalAmount = p.TotalAmount
	m.PaidAmount = p.PaidAmount
	m.BalanceAmount = p.BalanceAmount
	m.BalancePaidAmount = p.BalancePaidAmount
	m.BalancePaidDate = p.BalancePaidDate
	m.BalancePaidStatus = p.BalancePaidStatus
	m.TransactionStatus = p.TransactionStatus
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *booking.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// CancellationRecordModel is the persistence model for cancellation records.
type CancellationRecordModel struct {
	BaseModel
	BookingID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	PaymentID      uuid.UUID       `gorm:"type:uuid;not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PenaltyPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	PenaltyAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RefundAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (CancellationRecordModel) TableName() string {
	return "cancellation_records"
}

// ToDomain converts the persistence model to a domain CancellationRecord.
func (m *CancellationRecordModel) ToDomain() *booking.CancellationRecord {
	return &booking.CancellationRecord{
		BaseEntity:     m.BaseModel.ToDomain(),
		BookingID:      m.BookingID,
		PaymentID:      m.PaymentID,
		TotalAmount:    m.TotalAmount,
		PenaltyPercent: m.PenaltyPercent,
		PenaltyAmount:  m.PenaltyAmount,
		RefundAmount:   m.RefundAmount,
	}
}

// FromDomain populates the persistence model from a domain CancellationRecord.
func (m *CancellationRecordModel) FromDomain(r *booking.CancellationRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.BookingID = r.BookingID
	m.PaymentID = r.PaymentID
	m.TotalAmount = r.TotalAmount
	m.PenaltyPercent = r.PenaltyPercent
	m.PenaltyAmount = r.PenaltyAmount
	m.RefundAmount = r.RefundAmount
}

// CancellationRecordModelFromDomain creates a new persistence model from a domain CancellationRecord.
func CancellationRecordModelFromDomain(r *booking.CancellationRecord) *CancellationRecordModel {
	m := &CancellationRecordModel{}
	m.FromDomain(r)
	return m
}

// CancellationRuleModel is the persistence model for penalty rule tiers.
type CancellationRuleModel struct {
	BaseModel
	Name           string          `gorm:"type:varchar(100);not null"`
	MinDaysBefore  int             `gorm:"not null"`
	MaxDaysBefore  *int
	PenaltyPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
}

// TableName returns the table name for GORM
func (CancellationRuleModel) TableName() string {
	return "cancellation_rules"
}

// ToDomain converts the persistence model to a domain CancellationRule.
func (m *CancellationRuleModel) ToDomain() booking.CancellationRule {
	return booking.CancellationRule{
		BaseEntity:     m.BaseModel.ToDomain(),
		Name:           m.Name,
		MinDaysBefore:  m.MinDaysBefore,
		MaxDaysBefore:  m.MaxDaysBefore,
		PenaltyPercent: m.PenaltyPercent,
	}
}

// FromDomain populates the persistence model from a domain CancellationRule.
func (m *CancellationRuleModel) FromDomain(r *booking.CancellationRule) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Name = r.Name
	m.MinDaysBefore = r.MinDaysBefore
	m.MaxDaysBefore = r.MaxDaysBefore
	m.PenaltyPercent = r.PenaltyPercent
}

// ReferralModel is the persistence model for the Referral aggregate root.
type ReferralModel struct {
	AggregateModel
	ReferrerName  string                 `gorm:"type:varchar(200);not null"`
	ReferrerEmail string                 `gorm:"type:varchar(200)"`
	ReferrerPhone string                 `gorm:"type:varchar(20)"`
	Status        booking.ReferralStatus `gorm:"type:varchar(20);not null;default:'Pending';index"`
}

// TableName returns the table name for GORM
func (ReferralModel) TableName() string {
	return "referrals"
}

// ToDomain converts the persistence model to a domain Referral.
func (m *ReferralModel) ToDomain() *booking.Referral {
	return &booking.Referral{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ReferrerName:      m.ReferrerName,
		ReferrerEmail:     m.ReferrerEmail,
		ReferrerPhone:     m.ReferrerPhone,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Referral.
func (m *ReferralModel) FromDomain(r *booking.Referral) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ReferrerName = r.ReferrerName
	m.ReferrerEmail = r.ReferrerEmail
	m.ReferrerPhone = r.ReferrerPhone
	m.Status = r.Status
}

// ReferralModelFromDomain creates a new persistence model from a domain Referral.
func ReferralModelFromDomain(r *booking.Referral) *ReferralModel {
	m := &ReferralModel{}
	m.FromDomain(r)
	return m
}

// ReferralCommissionModel is the persistence model for commission payouts.
// The (referral_id, booking_id) pair is unique, so a payout can only be
// recorded once per referral and booking.
type ReferralCommissionModel struct {
	BaseModel
	ReferralID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_commission_referral_booking,priority:1"`
	BookingID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_commission_referral_booking,priority:2"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentDate time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReferralCommissionModel) TableName() string {
	return "referral_commissions"
}

// ToDomain converts the persistence model to a domain ReferralCommission.
func (m *ReferralCommissionModel) ToDomain() *booking.ReferralCommission {
	return &booking.ReferralCommission{
		BaseEntity:  m.BaseModel.ToDomain(),
		ReferralID:  m.ReferralID,
		BookingID:   m.BookingID,
		CustomerID:  m.CustomerID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
	}
}

// FromDomain populates the persistence model from a domain ReferralCommission.
func (m *ReferralCommissionModel) FromDomain(c *booking.ReferralCommission) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.ReferralID = c.ReferralID
	m.BookingID = c.BookingID
	m.CustomerID = c.CustomerID
	m.Amount = c.Amount
	m.PaymentDate = c.PaymentDate
}

// ReferralCommissionModelFromDomain creates a new persistence model from a domain ReferralCommission.
func ReferralCommissionModelFromDomain(c *booking.ReferralCommission) *ReferralCommissionModel {
	m := &ReferralCommissionModel{}
	m.FromDomain(c)
	return m
}

// AllModels returns every persistence model for schema migration in tests.
func AllModels() []interface{} {
	return []interface{}{
		&BookingModel{},
		&PaymentModel{},
		&CancellationRecordModel{},
		&CancellationRuleModel{},
		&ReferralModel{},
		&ReferralCommissionModel{},
	}
}

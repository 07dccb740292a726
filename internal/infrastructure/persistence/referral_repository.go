package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/domain/shared"
	"github.com/venuebook/backend/internal/infrastructure/persistence/models"
)

// GormReferralRepository implements booking.ReferralRepository using GORM
type GormReferralRepository struct {
	db *gorm.DB
}

// NewGormReferralRepository creates a new GormReferralRepository
func NewGormReferralRepository(db *gorm.DB) *GormReferralRepository {
	return &GormReferralRepository{db: db}
}

// FindByID finds a referral by its ID
func (r *GormReferralRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Referral, error) {
	var model models.ReferralModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a referral
func (r *GormReferralRepository) Save(ctx context.Context, referral *booking.Referral) error {
	model := models.ReferralModelFromDomain(referral)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a referral with optimistic locking
func (r *GormReferralRepository) SaveWithLock(ctx context.Context, referral *booking.Referral) error {
	referral.IncrementVersion()
	model := models.ReferralModelFromDomain(referral)
	result := r.db.WithContext(ctx).
		Model(model).
		Select("referrer_name", "referrer_email", "referrer_phone",
			"status", "version", "updated_at").
		Where("id = ? AND version = ?", referral.ID, referral.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// referralListingRow is the scan target for the referral listing join
type referralListingRow struct {
	ReferralID     uuid.UUID
	ReferrerName   string
	Status         booking.ReferralStatus
	BookingID      *uuid.UUID
	VenueName      *string
	CustomerName   *string
	CommissionPaid *decimal.Decimal
	PaymentDate    *time.Time
}

// ListWithCommissions returns every referral joined with its commission and
// booking details. Referrals without a payout appear with empty booking and
// commission columns.
func (r *GormReferralRepository) ListWithCommissions(ctx context.Context) ([]booking.ReferralListing, error) {
	var rows []referralListingRow
	err := r.db.WithContext(ctx).
		Table("referrals AS r").
		Select(`r.id AS referral_id, r.referrer_name, r.status,
			c.booking_id, b.venue_name, b.customer_name,
			c.amount AS commission_paid, c.payment_date`).
		Joins("LEFT JOIN referral_commissions c ON c.referral_id = r.id").
		Joins("LEFT JOIN bookings b ON b.id = c.booking_id").
		Order("r.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	listings := make([]booking.ReferralListing, len(rows))
	for i, row := range rows {
		listing := booking.ReferralListing{
			ReferralID:     row.ReferralID,
			ReferrerName:   row.ReferrerName,
			Status:         row.Status,
			BookingID:      row.BookingID,
			CommissionPaid: row.CommissionPaid,
			PaymentDate:    row.PaymentDate,
		}
		if row.VenueName != nil {
			listing.VenueName = *row.VenueName
		}
		if row.CustomerName != nil {
			listing.CustomerName = *row.CustomerName
		}
		listings[i] = listing
	}
	return listings, nil
}

// Ensure GormReferralRepository implements ReferralRepository
var _ booking.ReferralRepository = (*GormReferralRepository)(nil)

// GormReferralCommissionRepository implements booking.ReferralCommissionRepository using GORM
type GormReferralCommissionRepository struct {
	db *gorm.DB
}

// NewGormReferralCommissionRepository creates a new GormReferralCommissionRepository
func NewGormReferralCommissionRepository(db *gorm.DB) *GormReferralCommissionRepository {
	return &GormReferralCommissionRepository{db: db}
}

// FindByReferralAndBooking finds a commission payout for a referral/booking pair
func (r *GormReferralCommissionRepository) FindByReferralAndBooking(ctx context.Context, referralID, bookingID uuid.UUID) (*booking.ReferralCommission, error) {
	var model models.ReferralCommissionModel
	if err := r.db.WithContext(ctx).
		First(&model, "referral_id = ? AND booking_id = ?", referralID, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates a commission payout record. The unique index on
// (referral_id, booking_id) backs up the application-level duplicate check.
func (r *GormReferralCommissionRepository) Save(ctx context.Context, c *booking.ReferralCommission) error {
	model := models.ReferralCommissionModelFromDomain(c)
	return r.db.WithContext(ctx).Create(model).Error
}

// Ensure GormReferralCommissionRepository implements ReferralCommissionRepository
var _ booking.ReferralCommissionRepository = (*GormReferralCommissionRepository)(nil)

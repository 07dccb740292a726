package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/domain/shared"
	"github.com/venuebook/backend/internal/infrastructure/persistence/models"
)

// GormCancellationRecordRepository implements booking.CancellationRecordRepository using GORM
type GormCancellationRecordRepository struct {
	db *gorm.DB
}

// NewGormCancellationRecordRepository creates a new GormCancellationRecordRepository
func NewGormCancellationRecordRepository(db *gorm.DB) *GormCancellationRecordRepository {
	return &GormCancellationRecordRepository{db: db}
}

// FindByBookingID finds the cancellation record of a booking
func (r *GormCancellationRecordRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*booking.CancellationRecord, error) {
	var model models.CancellationRecordModel
	if err := r.db.WithContext(ctx).
		First(&model, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates a cancellation record
func (r *GormCancellationRecordRepository) Save(ctx context.Context, record *booking.CancellationRecord) error {
	model := models.CancellationRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormCancellationRecordRepository implements CancellationRecordRepository
var _ booking.CancellationRecordRepository = (*GormCancellationRecordRepository)(nil)

// GormCancellationRuleRepository implements booking.CancellationRuleRepository using GORM
type GormCancellationRuleRepository struct {
	db *gorm.DB
}

// NewGormCancellationRuleRepository creates a new GormCancellationRuleRepository
func NewGormCancellationRuleRepository(db *gorm.DB) *GormCancellationRuleRepository {
	return &GormCancellationRuleRepository{db: db}
}

// FindAll returns every cancellation rule tier
func (r *GormCancellationRuleRepository) FindAll(ctx context.Context) ([]booking.CancellationRule, error) {
	var ruleModels []models.CancellationRuleModel
	if err := r.db.WithContext(ctx).
		Order("min_days_before ASC").
		Find(&ruleModels).Error; err != nil {
		return nil, err
	}
	rules := make([]booking.CancellationRule, len(ruleModels))
	for i, model := range ruleModels {
		rules[i] = model.ToDomain()
	}
	return rules, nil
}

// Save creates or updates a cancellation rule
func (r *GormCancellationRuleRepository) Save(ctx context.Context, rule *booking.CancellationRule) error {
	var model models.CancellationRuleModel
	model.FromDomain(rule)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormCancellationRuleRepository implements CancellationRuleRepository
var _ booking.CancellationRuleRepository = (*GormCancellationRuleRepository)(nil)

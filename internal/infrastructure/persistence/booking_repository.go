package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/domain/shared"
	"github.com/venuebook/backend/internal/infrastructure/persistence/models"
)

// GormBookingRepository implements booking.BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking by its ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a booking
func (r *GormBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	model := models.BookingModelFromDomain(b)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a booking with optimistic locking. The caller must have
// incremented the aggregate version before saving.
func (r *GormBookingRepository) SaveWithLock(ctx context.Context, b *booking.Booking) error {
	b.IncrementVersion()
	model := models.BookingModelFromDomain(b)
	result := r.db.WithContext(ctx).
		Model(model).
		Select("venue_name", "customer_id", "customer_name", "event_date",
			"status", "balance_due_date", "gross_total", "version", "updated_at").
		Where("id = ? AND version = ?", b.ID, b.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// ExpireOverdue cancels every booking still in ADVANCE whose balance due date
// has passed, in a single conditional update. The predicate is reapplied at
// write time so concurrently settled bookings are untouched. The version is
// bumped so aggregates loaded before the sweep fail SaveWithLock afterwards
// instead of resurrecting a cancelled booking.
func (r *GormBookingRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BookingModel{}).
		Where("status = ? AND balance_due_date IS NOT NULL AND balance_due_date < ?",
			booking.BookingStatusAdvance, now).
		Updates(map[string]interface{}{
			"status":     booking.BookingStatusCancelled,
			"version":    gorm.Expr("version + 1"),
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormBookingRepository implements BookingRepository
var _ booking.BookingRepository = (*GormBookingRepository)(nil)

// Package releaserepo persists release records that signal the fulfillment
// pipeline to pick up an order.
package releaserepo

import (
	"context"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/release"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReleaseDTO represents the database structure for release records.
type ReleaseDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   string    `gorm:"type:varchar(19);index"`
	Status    int
	CreatedAt time.Time
}

// TableName specifies the database table name for release records.
func (ReleaseDTO) TableName() string {
	return "releases"
}

// GormReleaseRepository implements ReleaseRepository using GORM.
type GormReleaseRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.OrderID, aggregate any)
}

// NewGormReleaseRepository creates a new GORM release repository.
func NewGormReleaseRepository(db *gorm.DB, tracker aggregateTracker) *GormReleaseRepository {
	return &GormReleaseRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new release record to the database.
func (r *GormReleaseRepository) Add(ctx context.Context, record *release.Release) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := ReleaseDTO{
		ID:        record.ID(),
		OrderID:   record.OrderID().String(),
		Status:    int(record.Status()),
		CreatedAt: record.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.OrderID(), record)
	return nil
}

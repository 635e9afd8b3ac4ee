// Package sagarepo persists order placement saga records. One row exists per
// placement attempt, keyed by the generated order id; the recovery sweep
// queries this table for placements that never reached a terminal state.
package sagarepo

import (
	"context"
	"fmt"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/saga"
	"orderservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// PlacementSagaDTO represents the database structure for placement saga records.
type PlacementSagaDTO struct {
	OrderID           string `gorm:"type:varchar(19);primaryKey"`
	CouponConsumed    bool
	StockChecked      bool
	PaymentAuthorized bool
	State             int `gorm:"index"`
	Attempts          int
	CreatedAt         time.Time
	UpdatedAt         time.Time `gorm:"index"`
}

// TableName specifies the database table name for placement saga records.
func (PlacementSagaDTO) TableName() string {
	return "placement_sagas"
}

// GormSagaRepository implements SagaRepository using GORM.
type GormSagaRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.OrderID, aggregate any)
}

// NewGormSagaRepository creates a new GORM placement saga repository.
func NewGormSagaRepository(db *gorm.DB, tracker aggregateTracker) *GormSagaRepository {
	return &GormSagaRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new placement saga record to the database.
func (r *GormSagaRepository) Add(ctx context.Context, record *saga.PlacementSaga) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.OrderID(), record)
	return nil
}

// Update saves an existing placement saga record to the database.
func (r *GormSagaRepository) Update(ctx context.Context, record *saga.PlacementSaga) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).Model(&PlacementSagaDTO{}).
		Where("order_id = ?", dto.OrderID).
		Updates(map[string]any{
			"coupon_consumed":    dto.CouponConsumed,
			"stock_checked":      dto.StockChecked,
			"payment_authorized": dto.PaymentAuthorized,
			"state":              dto.State,
			"attempts":           dto.Attempts,
			"updated_at":         dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("placement saga", dto.OrderID)
	}

	r.tracker.TrackAggregate(record.OrderID(), record)
	return nil
}

// GetAllStalePending retrieves pending sagas last touched before the cutoff,
// oldest first.
func (r *GormSagaRepository) GetAllStalePending(ctx context.Context, before time.Time) ([]*saga.PlacementSaga, error) {
	var dtos []PlacementSagaDTO
	err := r.db.WithContext(ctx).
		Where("state = ? AND updated_at < ?", int(saga.StatePending), before).
		Order("updated_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*saga.PlacementSaga, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func fromDomain(record *saga.PlacementSaga) PlacementSagaDTO {
	return PlacementSagaDTO{
		OrderID:           record.OrderID().String(),
		CouponConsumed:    record.CouponConsumed(),
		StockChecked:      record.StockChecked(),
		PaymentAuthorized: record.PaymentAuthorized(),
		State:             int(record.State()),
		Attempts:          record.Attempts(),
		CreatedAt:         record.CreatedAt(),
		UpdatedAt:         record.UpdatedAt(),
	}
}

func toDomain(dto PlacementSagaDTO) (*saga.PlacementSaga, error) {
	id, err := kernel.OrderIDFromString(dto.OrderID)
	if err != nil {
		return nil, fmt.Errorf("restore placement saga: %w", err)
	}

	return saga.RestorePlacementSaga(id,
		dto.CouponConsumed, dto.StockChecked, dto.PaymentAuthorized,
		saga.State(dto.State), dto.Attempts, dto.CreatedAt, dto.UpdatedAt)
}

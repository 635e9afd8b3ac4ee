// Package paymentrepo persists payment records created during order placement.
package paymentrepo

import (
	"context"
	"errors"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/payment"
	"orderservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// PaymentDTO represents the database structure for payment records.
// One payment row exists per order; the order id is the primary key.
type PaymentDTO struct {
	OrderID        string `gorm:"type:varchar(19);primaryKey"`
	CardNumber     string
	DeliveryFee    int
	DiscountAmount int
	PaymentAmount  int
	OriginAmount   int
	CreatedAt      time.Time
}

// TableName specifies the database table name for payment records.
func (PaymentDTO) TableName() string {
	return "payments"
}

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.OrderID, aggregate any)
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new payment record to the database.
func (r *GormPaymentRepository) Add(ctx context.Context, record *payment.Payment) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := PaymentDTO{
		OrderID:        record.OrderID().String(),
		CardNumber:     record.CardNumber(),
		DeliveryFee:    record.DeliveryFee(),
		DiscountAmount: record.DiscountAmount(),
		PaymentAmount:  record.PaymentAmount(),
		OriginAmount:   record.OriginAmount(),
		CreatedAt:      record.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.OrderID(), record)
	return nil
}

// GetByOrderID retrieves the payment record for an order.
func (r *GormPaymentRepository) GetByOrderID(ctx context.Context, orderID kernel.OrderID) (*payment.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", orderID.String())
		}
		return nil, err
	}

	id, err := kernel.OrderIDFromString(dto.OrderID)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, dto.CardNumber,
		dto.DeliveryFee, dto.DiscountAmount, dto.PaymentAmount, dto.OriginAmount, dto.CreatedAt)
}

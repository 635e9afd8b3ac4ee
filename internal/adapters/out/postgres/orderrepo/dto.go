// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by customer and status.
type OrderDTO struct {
	ID               string `gorm:"type:varchar(19);primaryKey"`
	CustomerID       int64  `gorm:"index"`
	MemberID         string `gorm:"type:varchar(64);index"`
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	OriginAmount     int
	DiscountAmount   int
	PaymentAmount    int
	DeliveryFee      int
	Memo             string
	Status           int `gorm:"index"`
	Version          int64
	CreatedAt        time.Time
	Items            []LineItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one line item row of an order.
// Row insertion order follows the submitted item order, so sorting by id
// reproduces the original display order.
type LineItemDTO struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	OrderID        string `gorm:"type:varchar(19);index"`
	ProductID      int64
	CouponID       *int64
	Name           string
	OriginPrice    int
	DiscountAmount int
	FinalPrice     int
	Quantity       int
	Status         int
}

// TableName specifies the database table name for line item entities.
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]LineItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, LineItemDTO{
			OrderID:        aggregate.ID().String(),
			ProductID:      item.ProductID(),
			CouponID:       item.CouponID(),
			Name:           item.Name(),
			OriginPrice:    item.OriginPrice(),
			DiscountAmount: item.DiscountAmount(),
			FinalPrice:     item.FinalPrice(),
			Quantity:       item.Quantity(),
			Status:         int(item.Status()),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().String(),
		CustomerID:       aggregate.CustomerID(),
		MemberID:         aggregate.MemberID(),
		RecipientName:    aggregate.Recipient().Name(),
		RecipientPhone:   aggregate.Recipient().PhoneNumber(),
		RecipientAddress: aggregate.Recipient().Address(),
		OriginAmount:     aggregate.OriginAmount(),
		DiscountAmount:   aggregate.DiscountAmount(),
		PaymentAmount:    aggregate.PaymentAmount(),
		DeliveryFee:      aggregate.DeliveryFee(),
		Memo:             aggregate.Memo(),
		Status:           int(aggregate.Status()),
		Version:          aggregate.Version(),
		CreatedAt:        aggregate.CreatedAt(),
		Items:            items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including statuses and version using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.OrderIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	recipient, err := order.NewRecipient(dto.RecipientName, dto.RecipientPhone, dto.RecipientAddress)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		restored, itemErr := order.RestoreLineItem(item.ProductID, item.CouponID, item.Name,
			item.OriginPrice, item.DiscountAmount, item.FinalPrice, item.Quantity,
			order.Status(item.Status))
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, restored)
	}

	return order.RestoreOrder(id, dto.CustomerID, dto.MemberID, recipient, items,
		dto.OriginAmount, dto.DiscountAmount, dto.PaymentAmount, dto.DeliveryFee,
		dto.Memo, dto.CreatedAt, order.Status(dto.Status), dto.Version)
}

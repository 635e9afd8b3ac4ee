// Package queries contains read-only operations for order data.
// Implements the Query pattern for read operations in the CQRS architecture.
// Query handlers bypass the domain model and read projections straight from
// the database, enriching them with collaborator data where useful.
package queries

import (
	"errors"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order of a member with all of its line items.
//
// Example:
//
//	query, _ := NewGetOrderQuery(orderID, "member-1")
//	handler := NewGetOrderQueryHandler(db, productClient)
//
//	detail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	if !detail.ProductServiceAvailable {
//	    // product images are missing, render without them
//	}
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID  kernel.OrderID
	memberID string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order of a member.
// Validates that the order id is well formed and the member id is present.
func NewGetOrderQuery(orderID kernel.OrderID, memberID string) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setMemberID(memberID),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// MemberID returns the requesting member's identifier.
func (q GetOrderQuery) MemberID() string {
	return q.memberID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderQuery) setMemberID(memberID string) error {
	if memberID == "" {
		return errs.NewValueIsRequiredError("memberID")
	}

	q.memberID = memberID
	return nil
}

// GetOrderItemResponse is one line item of an order detail, enriched with
// product data when the product service answered.
type GetOrderItemResponse struct {
	ProductID      int64
	Name           string
	ProductImage   string
	OriginPrice    int
	DiscountAmount int
	FinalPrice     int
	Quantity       int
	Status         string
}

// GetOrderQueryResponse is the full order detail for a member.
// ProductServiceAvailable is false when the product service could not be
// reached; the detail is then served from stored data alone, without images.
type GetOrderQueryResponse struct {
	ID                      string
	Status                  string
	RecipientName           string
	RecipientPhone          string
	RecipientAddress        string
	OriginAmount            int
	DiscountAmount          int
	PaymentAmount           int
	DeliveryFee             int
	Memo                    string
	CreatedAt               time.Time
	Items                   []GetOrderItemResponse
	ProductServiceAvailable bool
}

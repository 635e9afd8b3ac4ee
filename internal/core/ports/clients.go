package ports

import (
	"context"
	"errors"

	"orderservice/internal/core/domain/model/kernel"
)

// ErrServiceUnavailable is returned by collaborator clients when the remote
// service could not be reached or kept failing after the configured retries.
// Command handlers treat it as fatal; query handlers degrade gracefully.
var ErrServiceUnavailable = errors.New("service unavailable")

// CouponClient marks a coupon as used in the coupon service.
type CouponClient interface {
	// Use marks the coupon as consumed, carrying the order id as the
	// idempotency token. Returns consumed=false when the coupon was already
	// used by a different order; repeating the call with the same order id
	// succeeds.
	Use(ctx context.Context, couponID int64, orderID kernel.OrderID) (consumed bool, err error)
}

// StockCheckItem is one product-quantity pair of a batch availability request.
type StockCheckItem struct {
	ProductID int64
	Quantity  int
}

// StockAvailability is the stock service's verdict for one requested product.
type StockAvailability struct {
	ProductID int64
	Available bool
}

// StockClient checks product availability in the stock service.
type StockClient interface {
	// CheckAvailability submits one batch request for all items of an order,
	// keyed by the order id. The response carries exactly one entry per
	// requested product.
	CheckAvailability(ctx context.Context, orderID kernel.OrderID, items []StockCheckItem) ([]StockAvailability, error)
}

// PaymentClient authorizes payments in the payment service.
type PaymentClient interface {
	// Authorize charges the given amount for the order. The order id makes
	// the call idempotent: re-authorizing an already charged order succeeds
	// without charging again.
	Authorize(ctx context.Context, orderID kernel.OrderID, amount int, cardNumber string) (success bool, err error)

	// Cancel voids any authorization held for the order. Canceling an order
	// that was never charged is a no-op; the call is idempotent by order id.
	Cancel(ctx context.Context, orderID kernel.OrderID) error
}

// Product is the subset of product-service data used to enrich order views.
type Product struct {
	ID       int64
	Name     string
	ImageURL string
}

// ProductClient fetches product data for the read path.
type ProductClient interface {
	// GetByIDs fetches product data for the given ids. Missing products are
	// simply absent from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]Product, error)
}

package ports

import (
	"context"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment records.
// Payments are written once during order placement and read back for display.
type PaymentRepository interface {
	// Add persists a new payment record.
	Add(ctx context.Context, record *payment.Payment) error

	// GetByOrderID retrieves the payment record for an order.
	// Returns errs.ErrObjectNotFound when no payment exists for the order.
	GetByOrderID(ctx context.Context, orderID kernel.OrderID) (*payment.Payment, error)
}

// Package ports defines repository and collaborator interfaces for the order domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and updating order entities
// together with their line items.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using optimistic
	// concurrency: the write only succeeds if the stored version matches the
	// version the aggregate was loaded with. On a version mismatch the update
	// fails with errs.ErrVersionIsInvalid and no rows are changed.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with all line items, or errs.ErrObjectNotFound
	// when no such order exists.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetAllByIDs retrieves the orders for the given identifiers.
	// The result may contain fewer orders than requested; callers that need
	// all-or-nothing semantics must compare lengths themselves.
	GetAllByIDs(ctx context.Context, ids []kernel.OrderID) ([]*order.Order, error)
}

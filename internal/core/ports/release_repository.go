package ports

import (
	"context"

	"orderservice/internal/core/domain/model/release"
)

// ReleaseRepository defines the persistence contract for release records.
// A release record is created when an order reaches the awaiting-release
// status and signals the fulfillment pipeline to pick the order up.
type ReleaseRepository interface {
	// Add persists a new release record.
	Add(ctx context.Context, record *release.Release) error
}

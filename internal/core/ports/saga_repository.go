package ports

import (
	"context"
	"time"

	"orderservice/internal/core/domain/model/saga"
)

// SagaRepository defines the persistence contract for order placement sagas.
// A saga row records which collaborator steps completed for one placement
// attempt so that a failed placement can be compensated later.
type SagaRepository interface {
	// Add persists a new placement saga record.
	Add(ctx context.Context, record *saga.PlacementSaga) error

	// Update persists changes to an existing placement saga record.
	Update(ctx context.Context, record *saga.PlacementSaga) error

	// GetAllStalePending retrieves pending sagas last touched before the given
	// cutoff. Used by the recovery sweep to find placements that crashed
	// between collaborator calls and the final commit.
	GetAllStalePending(ctx context.Context, before time.Time) ([]*saga.PlacementSaga, error)
}

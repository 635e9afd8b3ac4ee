package commands

import (
	"errors"

	"orderservice/internal/pkg/guard"
)

// RecoverPlacementSagasCommand triggers one sweep over placement sagas stuck
// in the pending state. Placements that crashed between collaborator calls
// and the final commit leave such rows behind.
//
// Example:
//
//	cmd := NewRecoverPlacementSagasCommand()
//	handler := NewRecoverPlacementSagasCommandHandler(uowFactory, payments, gracePeriod, maxAttempts)
//
//	// Run periodically from the job scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Saga recovery failed: %v", err)
//	}
type RecoverPlacementSagasCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrRecoverPlacementSagasCommandIsNotConstructed = errors.New(
		"RecoverPlacementSagasCommand must be created via NewRecoverPlacementSagasCommand constructor",
	)
)

// NewRecoverPlacementSagasCommand creates a command to trigger one recovery sweep.
// This is a parameterless command that processes all stale pending sagas.
func NewRecoverPlacementSagasCommand() RecoverPlacementSagasCommand {
	command := RecoverPlacementSagasCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecoverPlacementSagasCommandIsNotConstructed if validation fails.
func (c *RecoverPlacementSagasCommand) Validate() error {
	return c.guard.Validate(ErrRecoverPlacementSagasCommandIsNotConstructed)
}

// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderservice/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentRepoFactory provides access to payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// ReleaseRepoFactory provides access to release repository within a transaction.
	ReleaseRepoFactory interface {
		ReleaseRepository() ports.ReleaseRepository
	}

	// SagaRepoFactory provides access to placement saga repository within a transaction.
	SagaRepoFactory interface {
		SagaRepository() ports.SagaRepository
	}

	// StatusUoW manages transactions for status change operations.
	// Besides the order aggregate it covers the release records a change to
	// the awaiting-release status inserts.
	StatusUoW interface {
		TxManager
		OrderRepoFactory
		ReleaseRepoFactory
	}

	// StatusUoWFactory creates new status change unit of work instances.
	StatusUoWFactory interface {
		Create() StatusUoW
	}

	// PlacementUoW manages transactions for the order placement flow.
	// One placement writes the order, its payment record, and the saga row.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   paymentRepo := uow.PaymentRepository()
	//   sagaRepo := uow.SagaRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	PlacementUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		SagaRepoFactory
	}

	// PlacementUoWFactory creates new placement unit of work instances.
	PlacementUoWFactory interface {
		Create() PlacementUoW
	}

	// RecoveryUoW manages transactions for the saga recovery sweep.
	RecoveryUoW interface {
		TxManager
		OrderRepoFactory
		SagaRepoFactory
	}

	// RecoveryUoWFactory creates new recovery unit of work instances.
	RecoveryUoWFactory interface {
		Create() RecoveryUoW
	}
)

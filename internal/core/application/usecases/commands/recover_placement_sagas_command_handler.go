package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderservice/internal/core/domain/model/saga"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"
)

// RecoverPlacementSagasCommandHandler sweeps placement sagas stuck in the
// pending state past a grace period and resolves each one:
//
//   - the order exists: the final commit went through, the saga is marked
//     completed;
//   - the order does not exist: the placement died mid-flight. Any payment
//     authorization held for the order id is voided (idempotent), and the
//     saga is marked failed. A compensation failure leaves the saga pending
//     for the next sweep; after the configured attempt cap the saga is marked
//     failed regardless and left for manual follow-up.
//
// Each saga is resolved in its own transaction so one poisoned row does not
// block the sweep.
type RecoverPlacementSagasCommandHandler struct {
	uowFactory  RecoveryUoWFactory
	payments    ports.PaymentClient
	gracePeriod time.Duration
	maxAttempts int
	logger      *slog.Logger
}

// NewRecoverPlacementSagasCommandHandler creates a handler for the recovery sweep.
// gracePeriod is how long a pending saga is left alone before it is considered
// stale; maxAttempts caps compensation retries per saga.
func NewRecoverPlacementSagasCommandHandler(uowFactory RecoveryUoWFactory, payments ports.PaymentClient,
	gracePeriod time.Duration, maxAttempts int, logger *slog.Logger,
) RecoverPlacementSagasCommandHandler {
	return RecoverPlacementSagasCommandHandler{
		uowFactory:  uowFactory,
		payments:    payments,
		gracePeriod: gracePeriod,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Handle processes one recovery sweep.
func (h RecoverPlacementSagasCommandHandler) Handle(ctx context.Context, cmd RecoverPlacementSagasCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	stale, err := h.getStaleSagas(ctx)
	if err != nil {
		return err
	}

	for _, placementSaga := range stale {
		if err := h.resolve(ctx, placementSaga); err != nil {
			h.logger.Warn("failed to resolve placement saga",
				"order_id", placementSaga.OrderID().String(),
				"attempts", placementSaga.Attempts(),
				"error", err)
		}
	}

	return nil
}

func (h RecoverPlacementSagasCommandHandler) getStaleSagas(ctx context.Context) ([]*saga.PlacementSaga, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.SagaRepository().GetAllStalePending(ctx, time.Now().Add(-h.gracePeriod))
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stale, nil
}

func (h RecoverPlacementSagasCommandHandler) resolve(ctx context.Context, placementSaga *saga.PlacementSaga) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()

	_, err := uow.OrderRepository().Get(ctx, placementSaga.OrderID())
	switch {
	case err == nil:
		// The final commit went through; only the saga row lagged behind.
		placementSaga.Complete(now)
	case errors.Is(err, errs.ErrObjectNotFound):
		placementSaga.RecordAttempt(now)

		if compErr := h.compensate(ctx, placementSaga); compErr != nil {
			if placementSaga.Attempts() < h.maxAttempts {
				// Leave pending; the next sweep retries.
				if err = uow.SagaRepository().Update(ctx, placementSaga); err != nil {
					return err
				}
				if err = uow.Commit(ctx); err != nil {
					return err
				}
				return compErr
			}
			h.logger.Error("placement saga exhausted compensation attempts",
				"order_id", placementSaga.OrderID().String(),
				"error", compErr)
		}
		placementSaga.Fail(now)
	default:
		return err
	}

	if err = uow.SagaRepository().Update(ctx, placementSaga); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// compensate undoes the external effects of a placement that never committed.
// The void is issued regardless of the saga's payment-authorized flag: a crash
// between the authorization call and its checkpoint leaves the durable flag
// false while the hold is real. Cancel is idempotent by order id, so voiding
// an authorization that never happened is a no-op.
func (h RecoverPlacementSagasCommandHandler) compensate(ctx context.Context, placementSaga *saga.PlacementSaga) error {
	return h.payments.Cancel(ctx, placementSaga.OrderID())
}

package commands

import (
	"context"
	"time"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/domain/model/release"
)

// ChangeOrderStatusCommandHandler handles single-order status changes.
// The requested status is applied to the order and uniformly to all of its
// line items after the transition policy approves it. A change to the
// awaiting-release status additionally inserts one release record for the
// fulfillment pipeline.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, policy)
//	cmd, _ := NewChangeOrderStatusCommand(orderID, order.PreparingProduct)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    var violation *order.TransitionViolationError
//	    if errors.As(err, &violation) {
//	        // transition not allowed from the order's current status
//	    }
//	    return err
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory StatusUoWFactory
	policy     order.TransitionPolicy
}

// NewChangeOrderStatusCommandHandler creates a handler for single-order
// status changes.
func NewChangeOrderStatusCommandHandler(uowFactory StatusUoWFactory, policy order.TransitionPolicy,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the status change command.
// Loads the order, applies the policy-checked transition, and persists the
// order (and release record, when applicable) in one transaction.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(h.policy, cmd.Status()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if cmd.Status() == order.AwaitingRelease {
		record, err := release.NewRelease(cmd.OrderID(), time.Now())
		if err != nil {
			return err
		}
		if err = uow.ReleaseRepository().Add(ctx, record); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"

	"orderservice/internal/core/domain/model/order"
)

// ChangeLineItemStatusCommandHandler handles status changes of a single line
// item. The policy check runs against the item's own current status, so an
// item can walk the cancel/refund path while its siblings proceed to
// fulfillment.
type ChangeLineItemStatusCommandHandler struct {
	uowFactory StatusUoWFactory
	policy     order.TransitionPolicy
}

// NewChangeLineItemStatusCommandHandler creates a handler for line item
// status changes.
func NewChangeLineItemStatusCommandHandler(uowFactory StatusUoWFactory, policy order.TransitionPolicy,
) ChangeLineItemStatusCommandHandler {
	return ChangeLineItemStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the line item status change command.
func (h ChangeLineItemStatusCommandHandler) Handle(ctx context.Context, cmd ChangeLineItemStatusCommand) error {
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

	if err = aggregate.ChangeItemStatus(h.policy, cmd.ProductID(), cmd.Status()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

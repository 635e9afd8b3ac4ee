package commands

import (
	"context"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/domain/model/release"
	"orderservice/internal/pkg/errs"
)

// BulkChangeOrderStatusCommandHandler handles batch status changes, used by
// back-office screens that advance whole shipments at once.
//
// The batch is atomic: the handler first verifies that every requested id
// resolved to an order, then validates and applies the transition per order
// inside one transaction. Any unknown id or policy violation rolls the whole
// batch back.
type BulkChangeOrderStatusCommandHandler struct {
	uowFactory StatusUoWFactory
	policy     order.TransitionPolicy
}

// NewBulkChangeOrderStatusCommandHandler creates a handler for batch status changes.
func NewBulkChangeOrderStatusCommandHandler(uowFactory StatusUoWFactory, policy order.TransitionPolicy,
) BulkChangeOrderStatusCommandHandler {
	return BulkChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the batch status change command.
// Returns errs.ErrObjectNotFound when any requested order does not exist;
// nothing is changed in that case.
func (h BulkChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd BulkChangeOrderStatusCommand) error {
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
	aggregates, err := orderRepo.GetAllByIDs(ctx, cmd.OrderIDs())
	if err != nil {
		return err
	}
	if len(aggregates) != len(cmd.OrderIDs()) {
		return errs.NewObjectNotFoundError("orderIDs", missingIDs(cmd.OrderIDs(), aggregates))
	}

	for _, aggregate := range aggregates {
		if err = aggregate.ChangeStatus(h.policy, cmd.Status()); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		if cmd.Status() == order.AwaitingRelease {
			record, err := release.NewRelease(aggregate.ID(), time.Now())
			if err != nil {
				return err
			}
			if err = uow.ReleaseRepository().Add(ctx, record); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

func missingIDs(requested []kernel.OrderID, found []*order.Order) string {
	present := make(map[string]struct{}, len(found))
	for _, aggregate := range found {
		present[aggregate.ID().String()] = struct{}{}
	}

	missing := ""
	for _, id := range requested {
		if _, ok := present[id.String()]; ok {
			continue
		}
		if missing != "" {
			missing += ", "
		}
		missing += id.String()
	}

	return missing
}

package commands

import (
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrBulkChangeOrderStatusCommandIsNotConstructed = errors.New(
	"BulkChangeOrderStatusCommand must be created via NewBulkChangeOrderStatusCommand constructor",
)

// BulkChangeOrderStatusCommand represents a request to move a set of orders
// to the same status in one shot. The batch is all-or-nothing: one unknown id
// or one disallowed transition aborts the whole batch.
type BulkChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.OrderID
	status   order.Status

	guard guard.ConstructorGuard
}

// NewBulkChangeOrderStatusCommand creates a command to change the status of
// several orders at once. Validates that at least one order id is present and
// that every id and the requested status are well formed.
func NewBulkChangeOrderStatusCommand(orderIDs []kernel.OrderID, status order.Status,
) (BulkChangeOrderStatusCommand, error) {
	cmd := BulkChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setStatus(status),
	); err != nil {
		return BulkChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkChangeOrderStatusCommandIsNotConstructed)
}

// OrderIDs returns the identifiers of the orders to change.
func (c BulkChangeOrderStatusCommand) OrderIDs() []kernel.OrderID {
	return c.orderIDs
}

// Status returns the requested status.
func (c BulkChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c *BulkChangeOrderStatusCommand) setOrderIDs(orderIDs []kernel.OrderID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIDs")
	}

	// Repeated ids collapse to one entry so the existence check compares
	// distinct orders against distinct ids.
	seen := make(map[string]struct{}, len(orderIDs))
	distinct := make([]kernel.OrderID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id.String()]; ok {
			continue
		}
		seen[id.String()] = struct{}{}
		distinct = append(distinct, id)
	}

	c.orderIDs = distinct
	return nil
}

func (c *BulkChangeOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

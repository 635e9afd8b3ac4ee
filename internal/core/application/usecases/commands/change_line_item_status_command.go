package commands

import (
	"errors"
	"fmt"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrChangeLineItemStatusCommandIsNotConstructed = errors.New(
	"ChangeLineItemStatusCommand must be created via NewChangeLineItemStatusCommand constructor",
)

// ChangeLineItemStatusCommand represents a request to move one line item of
// an order to a new status, independently of the rest of the order. Only the
// cancel/refund path is reachable this way; the domain rejects other targets.
type ChangeLineItemStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	productID int64
	status    order.Status

	guard guard.ConstructorGuard
}

// NewChangeLineItemStatusCommand creates a command to change one line item's status.
func NewChangeLineItemStatusCommand(orderID kernel.OrderID, productID int64, status order.Status,
) (ChangeLineItemStatusCommand, error) {
	cmd := ChangeLineItemStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
		cmd.setStatus(status),
	); err != nil {
		return ChangeLineItemStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeLineItemStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeLineItemStatusCommandIsNotConstructed)
}

// OrderID returns the owning order's identifier.
func (c ChangeLineItemStatusCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// ProductID returns the product identifying the line item within the order.
func (c ChangeLineItemStatusCommand) ProductID() int64 {
	return c.productID
}

// Status returns the requested status.
func (c ChangeLineItemStatusCommand) Status() order.Status {
	return c.status
}

func (c *ChangeLineItemStatusCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeLineItemStatusCommand) setProductID(productID int64) error {
	if productID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("productID",
			fmt.Errorf("%d is not greater than 0", productID))
	}

	c.productID = productID
	return nil
}

func (c *ChangeLineItemStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

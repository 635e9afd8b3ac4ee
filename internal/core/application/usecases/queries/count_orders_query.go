package queries

import (
	"errors"
	"fmt"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrCountOrdersQueryIsNotConstructed = errors.New(
	"CountOrdersQuery must be created via NewCountOrdersQuery constructor",
)

// CountOrdersQuery counts a customer's orders, optionally narrowed to one
// status. Used by back-office dashboards.
type CountOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID int64
	status     *order.Status

	guard guard.ConstructorGuard
}

// NewCountOrdersQuery creates an order count query for one customer.
func NewCountOrdersQuery(customerID int64, status *order.Status) (CountOrdersQuery, error) {
	query := CountOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setCustomerID(customerID),
		query.setStatus(status),
	); err != nil {
		return CountOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q CountOrdersQuery) Validate() error {
	return q.guard.Validate(ErrCountOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are counted.
func (q CountOrdersQuery) CustomerID() int64 {
	return q.customerID
}

// Status returns the status filter, or nil.
func (q CountOrdersQuery) Status() *order.Status {
	return q.status
}

func (q *CountOrdersQuery) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("customerID",
			fmt.Errorf("%d is not greater than 0", customerID))
	}

	q.customerID = customerID
	return nil
}

func (q *CountOrdersQuery) setStatus(status *order.Status) error {
	if status != nil {
		if err := status.Validate(); err != nil {
			return err
		}
	}

	q.status = status
	return nil
}

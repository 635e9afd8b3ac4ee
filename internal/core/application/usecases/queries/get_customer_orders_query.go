package queries

import (
	"errors"
	"fmt"
	"time"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetCustomerOrdersQuery retrieves a page of a customer's orders, newest
// first. Optional filters narrow the page by status, placing member,
// recipient name/phone/address, and placement date range.
//
// Example:
//
//	status := order.PaymentCompleted
//	query, _ := NewGetCustomerOrdersQuery(42, "", &status, nil, nil, "", "", "", 0, 20)
//	page, err := handler.Handle(ctx, query)
type GetCustomerOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID     int64
	memberID       string
	status         *order.Status
	startDate      *time.Time
	endDate        *time.Time
	recipientName  string
	recipientPhone string
	recipientAddr  string
	page           int
	size           int

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a paged customer order list query.
// Every filter except customerID is optional; the zero value disables it.
// page is zero-based; size defaults to 20 and is capped at 100.
func NewGetCustomerOrdersQuery(customerID int64, memberID string, status *order.Status,
	startDate, endDate *time.Time, recipientName, recipientPhone, recipientAddr string, page, size int,
) (GetCustomerOrdersQuery, error) {
	query := GetCustomerOrdersQuery{
		memberID:       memberID,
		startDate:      startDate,
		endDate:        endDate,
		recipientName:  recipientName,
		recipientPhone: recipientPhone,
		recipientAddr:  recipientAddr,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setCustomerID(customerID),
		query.setStatus(status),
		query.setPaging(page, size),
	); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are listed.
func (q GetCustomerOrdersQuery) CustomerID() int64 {
	return q.customerID
}

// Status returns the status filter, or nil.
func (q GetCustomerOrdersQuery) Status() *order.Status {
	return q.status
}

// StartDate returns the inclusive lower bound of the date filter, or nil.
func (q GetCustomerOrdersQuery) StartDate() *time.Time {
	return q.startDate
}

// EndDate returns the exclusive upper bound of the date filter, or nil.
func (q GetCustomerOrdersQuery) EndDate() *time.Time {
	return q.endDate
}

// MemberID returns the placing-member filter, or the empty string.
func (q GetCustomerOrdersQuery) MemberID() string {
	return q.memberID
}

// RecipientName returns the recipient name filter, or the empty string.
func (q GetCustomerOrdersQuery) RecipientName() string {
	return q.recipientName
}

// RecipientPhone returns the recipient phone filter, or the empty string.
func (q GetCustomerOrdersQuery) RecipientPhone() string {
	return q.recipientPhone
}

// RecipientAddr returns the recipient address filter, or the empty string.
func (q GetCustomerOrdersQuery) RecipientAddr() string {
	return q.recipientAddr
}

// Page returns the zero-based page index.
func (q GetCustomerOrdersQuery) Page() int {
	return q.page
}

// Size returns the page size.
func (q GetCustomerOrdersQuery) Size() int {
	return q.size
}

func (q *GetCustomerOrdersQuery) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("customerID",
			fmt.Errorf("%d is not greater than 0", customerID))
	}

	q.customerID = customerID
	return nil
}

func (q *GetCustomerOrdersQuery) setStatus(status *order.Status) error {
	if status != nil {
		if err := status.Validate(); err != nil {
			return err
		}
	}

	q.status = status
	return nil
}

func (q *GetCustomerOrdersQuery) setPaging(page, size int) error {
	if page < 0 {
		return errs.NewValueIsInvalidErrorWithCause("page",
			fmt.Errorf("%d is negative", page))
	}
	if size < 0 || size > maxPageSize {
		return errs.NewValueIsOutOfRangeError("size", size, 0, maxPageSize)
	}
	if size == 0 {
		size = defaultPageSize
	}

	q.page = page
	q.size = size
	return nil
}

// GetCustomerOrderResponse is one row of the customer order list.
type GetCustomerOrderResponse struct {
	ID            string
	Status        string
	RecipientName string
	OriginAmount  int
	PaymentAmount int
	ItemCount     int
	CreatedAt     time.Time
}

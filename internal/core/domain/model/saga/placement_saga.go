// Package saga provides the compensation record for the order-placement flow.
//
// The placement flow talks to three external collaborators (coupon, stock,
// payment) that share no transaction with this service's storage. The
// PlacementSaga records, keyed by the generated order id, which external
// steps have already executed, so that a crash between an external call and
// the final local commit leaves a durable trace. Every external call is
// idempotent against the order id, which makes retrying a pending saga safe.
package saga

import (
	"errors"
	"fmt"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
)

// ErrSagaIsNotConstructed is returned when a PlacementSaga instance was not
// created through the NewPlacementSaga factory method.
var ErrSagaIsNotConstructed = errors.New("PlacementSaga must be created via NewPlacementSaga constructor")

// State describes the overall progress of a placement saga.
type State int

const (
	// StateUnknown represents an invalid or undefined saga state.
	StateUnknown State = iota

	// StatePending means some external step may have executed but the
	// placement has not been confirmed complete. Pending sagas past a grace
	// period are picked up by the recovery sweep.
	StatePending

	// StateCompleted means the placement finished and all records were persisted.
	StateCompleted

	// StateFailed means recovery gave up after the attempt cap; the saga is
	// kept for manual inspection.
	StateFailed
)

// String returns the wire name of the saga state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateCompleted:
		return "COMPLETED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Validate checks that the state is one of the declared values.
func (s State) Validate() error {
	if s != StatePending && s != StateCompleted && s != StateFailed {
		return errs.NewValueIsInvalidErrorWithCause("saga state",
			fmt.Errorf("%d is not a valid saga state", s))
	}
	return nil
}

// PlacementSaga tracks the external side effects of one order placement.
type PlacementSaga struct {
	orderID           kernel.OrderID
	couponConsumed    bool
	stockChecked      bool
	paymentAuthorized bool
	state             State
	attempts          int
	createdAt         time.Time
	updatedAt         time.Time

	isConstructed bool
}

// NewPlacementSaga creates a pending saga for the given order id.
func NewPlacementSaga(orderID kernel.OrderID, createdAt time.Time) (*PlacementSaga, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return &PlacementSaga{
		orderID:       orderID,
		state:         StatePending,
		createdAt:     createdAt,
		updatedAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestorePlacementSaga reconstructs a saga from persistence.
func RestorePlacementSaga(orderID kernel.OrderID,
	couponConsumed, stockChecked, paymentAuthorized bool,
	state State, attempts int,
	createdAt, updatedAt time.Time,
) (*PlacementSaga, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if attempts < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("saga attempts",
			fmt.Errorf("%d is negative", attempts))
	}

	return &PlacementSaga{
		orderID:           orderID,
		couponConsumed:    couponConsumed,
		stockChecked:      stockChecked,
		paymentAuthorized: paymentAuthorized,
		state:             state,
		attempts:          attempts,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the saga was created through its constructor.
func (s *PlacementSaga) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSagaIsNotConstructed
	}
	return nil
}

// OrderID returns the order id the saga is keyed by.
func (s *PlacementSaga) OrderID() kernel.OrderID {
	return s.orderID
}

// CouponConsumed reports whether the coupon collaborator consumed a coupon
// for this placement.
func (s *PlacementSaga) CouponConsumed() bool {
	return s.couponConsumed
}

// StockChecked reports whether the stock availability batch call completed.
func (s *PlacementSaga) StockChecked() bool {
	return s.stockChecked
}

// PaymentAuthorized reports whether the payment collaborator authorized the
// net amount.
func (s *PlacementSaga) PaymentAuthorized() bool {
	return s.paymentAuthorized
}

// State returns the saga state.
func (s *PlacementSaga) State() State {
	return s.state
}

// Attempts returns how many recovery attempts have been made.
func (s *PlacementSaga) Attempts() int {
	return s.attempts
}

// CreatedAt returns the saga creation timestamp.
func (s *PlacementSaga) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (s *PlacementSaga) UpdatedAt() time.Time {
	return s.updatedAt
}

// MarkCouponConsumed records that the coupon step executed.
func (s *PlacementSaga) MarkCouponConsumed(now time.Time) {
	s.couponConsumed = true
	s.updatedAt = now
}

// MarkStockChecked records that the stock availability step executed.
func (s *PlacementSaga) MarkStockChecked(now time.Time) {
	s.stockChecked = true
	s.updatedAt = now
}

// MarkPaymentAuthorized records that payment authorization succeeded.
func (s *PlacementSaga) MarkPaymentAuthorized(now time.Time) {
	s.paymentAuthorized = true
	s.updatedAt = now
}

// Complete moves the saga to its terminal success state.
func (s *PlacementSaga) Complete(now time.Time) {
	s.state = StateCompleted
	s.updatedAt = now
}

// Fail moves the saga to its terminal failure state.
func (s *PlacementSaga) Fail(now time.Time) {
	s.state = StateFailed
	s.updatedAt = now
}

// RecordAttempt increments the recovery attempt counter.
func (s *PlacementSaga) RecordAttempt(now time.Time) {
	s.attempts++
	s.updatedAt = now
}

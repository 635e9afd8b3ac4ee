// Package release provides the release record created when an order enters
// the awaiting-shipment state. One record is created per such transition;
// transitioning again later creates another.
package release

import (
	"errors"
	"fmt"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrReleaseIsNotConstructed is returned when a Release instance was not
// created through the NewRelease factory method.
var ErrReleaseIsNotConstructed = errors.New("Release must be created via NewRelease constructor")

// Status describes the shipment progress of a release.
type Status int

const (
	// StatusUnknown represents an invalid or undefined release status.
	StatusUnknown Status = iota

	// StatusAwaiting is the initial release status: packed, waiting for pickup.
	StatusAwaiting

	// StatusCompleted indicates the shipment left the warehouse.
	StatusCompleted
)

// String returns the wire name of the release status.
func (s Status) String() string {
	switch s {
	case StatusAwaiting:
		return "AWAITING_RELEASE"
	case StatusCompleted:
		return "RELEASE_COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// Validate checks that the release status is one of the declared values.
func (s Status) Validate() error {
	if s != StatusAwaiting && s != StatusCompleted {
		return errs.NewValueIsInvalidErrorWithCause("release status",
			fmt.Errorf("%d is not a valid release status", s))
	}
	return nil
}

// Release links an order to a release-status value. It is created exactly
// when an order transitions into the awaiting-release state.
type Release struct {
	id        uuid.UUID
	orderID   kernel.OrderID
	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewRelease creates a release record for the given order in the initial
// awaiting status.
func NewRelease(orderID kernel.OrderID, createdAt time.Time) (*Release, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return &Release{
		id:            uuid.New(),
		orderID:       orderID,
		status:        StatusAwaiting,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreRelease reconstructs a release record from persistence.
func RestoreRelease(id uuid.UUID, orderID kernel.OrderID, status Status, createdAt time.Time) (*Release, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Release{
		id:            id,
		orderID:       orderID,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Release was created through its constructor.
func (r *Release) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReleaseIsNotConstructed
	}
	return nil
}

// ID returns the release record identifier.
func (r *Release) ID() uuid.UUID {
	return r.id
}

// OrderID returns the identifier of the released order.
func (r *Release) OrderID() kernel.OrderID {
	return r.orderID
}

// Status returns the release status.
func (r *Release) Status() Status {
	return r.status
}

// CreatedAt returns the record creation timestamp.
func (r *Release) CreatedAt() time.Time {
	return r.createdAt
}

package order

import (
	"errors"
	"fmt"

	"orderservice/internal/pkg/errs"
)

// ErrTransitionViolation is the sentinel wrapped by every TransitionViolationError.
// Use errors.Is to classify a status-change rejection.
var ErrTransitionViolation = errors.New("status transition is not allowed")

// TransitionViolationError reports a status change whose precondition failed:
// the subject's current status is not in the allowed-predecessor set of the
// requested status.
type TransitionViolationError struct {
	Current   Status
	Requested Status
}

// NewTransitionViolationError creates a TransitionViolationError for the given pair.
func NewTransitionViolationError(current, requested Status) *TransitionViolationError {
	return &TransitionViolationError{
		Current:   current,
		Requested: requested,
	}
}

func (e *TransitionViolationError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrTransitionViolation, e.Current, e.Requested)
}

func (e *TransitionViolationError) Unwrap() error {
	return ErrTransitionViolation
}

// TransitionPolicy is the rule table for order status changes: for each
// target status, the set of statuses a subject may legally be in beforehand.
//
// The table is data declared at compile time, not code, so it can be audited
// and unit-tested independently of any transition logic. A requested status
// absent from the table is always rejected (the policy fails closed), which
// makes Pending unreachable by any transition request: it exists only as
// the initial status assigned at placement.
//
// Example usage:
//
//	policy, err := order.NewTransitionPolicy()
//	if err != nil {
//	    // the compiled-in table is inconsistent; refuse to start
//	}
//	if !policy.IsAllowed(order.PreparingProduct, order.AwaitingRelease) {
//	    // reject the request
//	}
type TransitionPolicy struct {
	rules map[Status]map[Status]struct{}
}

// transitionRules maps each requestable target status to its allowed
// predecessor statuses.
func transitionRules() map[Status][]Status {
	return map[Status][]Status{
		PaymentCompleted: {Pending},
		PreparingProduct: {PaymentCompleted},
		AwaitingRelease:  {PreparingProduct},
		Canceled:         {Pending, PaymentCompleted, PreparingProduct},
		RefundRequest:    {PaymentCompleted, PreparingProduct, AwaitingRelease},
		Refunded:         {RefundRequest},
	}
}

// NewTransitionPolicy builds the policy from the compiled-in rule table and
// verifies its consistency: every target and every predecessor must be a
// valid status, and every non-initial status must be reachable through some
// rule. An inconsistent table is a programming error and should prevent the
// process from starting.
func NewTransitionPolicy() (TransitionPolicy, error) {
	rules := make(map[Status]map[Status]struct{})
	for target, predecessors := range transitionRules() {
		if err := target.Validate(); err != nil {
			return TransitionPolicy{}, err
		}

		set := make(map[Status]struct{}, len(predecessors))
		for _, predecessor := range predecessors {
			if err := predecessor.Validate(); err != nil {
				return TransitionPolicy{}, err
			}
			set[predecessor] = struct{}{}
		}
		rules[target] = set
	}

	for status := range getValidStatusStrings() {
		if status == Pending {
			continue // initial status, never a transition target
		}
		if _, ok := rules[status]; !ok {
			return TransitionPolicy{}, errs.NewValueIsInvalidErrorWithCause("transition table",
				fmt.Errorf("status %s has no transition rule", status))
		}
	}

	return TransitionPolicy{rules: rules}, nil
}

// IsAllowed reports whether a subject currently in current may transition to
// requested. Pure function of its two inputs; a requested status with no
// table entry is always rejected.
func (p TransitionPolicy) IsAllowed(current, requested Status) bool {
	predecessors, ok := p.rules[requested]
	if !ok {
		return false
	}

	_, allowed := predecessors[current]
	return allowed
}

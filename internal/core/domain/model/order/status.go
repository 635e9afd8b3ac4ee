package order

import (
	"fmt"

	"orderservice/internal/pkg/errs"
)

// Status represents the lifecycle state of an order or of a single line item.
// It is a closed set: extending it requires extending the transition table in
// policy.go, and the policy constructor verifies at startup that every
// transition-reachable status has a rule.
//
// State transitions (overall order):
//
//	Pending ──> PaymentCompleted ──> PreparingProduct ──> AwaitingRelease
//	   │               │                    │                    │
//	   └───────────────┴──> Canceled        └──> RefundRequest <─┘
//	                                                  │
//	                                                  └──> Refunded
//
// Status is a value object that provides string representations for
// persistence and display; transition validation lives in TransitionPolicy.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned when an order is placed and
	// payment has not yet been confirmed.
	Pending

	// PaymentCompleted indicates payment authorization succeeded for the order.
	PaymentCompleted

	// PreparingProduct indicates the seller is preparing the ordered products.
	PreparingProduct

	// AwaitingRelease indicates the order is packed and waiting for shipment.
	// Entering this status creates a release record.
	AwaitingRelease

	// Canceled indicates the order or line item was canceled.
	// This is a terminal state; the record is kept, never deleted.
	Canceled

	// RefundRequest indicates the buyer asked for a refund.
	RefundRequest

	// Refunded indicates the refund was settled.
	// This is a terminal state; the record is kept, never deleted.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Pending:          "PENDING",
		PaymentCompleted: "PAYMENT_COMPLETED",
		PreparingProduct: "PREPARING_PRODUCT",
		AwaitingRelease:  "AWAITING_RELEASE",
		Canceled:         "CANCELED",
		RefundRequest:    "REFUND_REQUEST",
		Refunded:         "REFUNDED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:          "PENDING",
		PaymentCompleted: "PAYMENT_COMPLETED",
		PreparingProduct: "PREPARING_PRODUCT",
		AwaitingRelease:  "AWAITING_RELEASE",
		Canceled:         "CANCELED",
		RefundRequest:    "REFUND_REQUEST",
		Refunded:         "REFUNDED",
	}
}

// StatusFromString parses the wire representation of a status, e.g.
// "AWAITING_RELEASE". Unrecognized values are rejected.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", value))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, PaymentCompleted, PreparingProduct,
// AwaitingRelease, Canceled, RefundRequest, Refunded.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "PAYMENT_COMPLETED",
// or "UNKNOWN" for invalid values.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

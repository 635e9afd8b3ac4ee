package kernel

import (
	"fmt"
	"strings"
	"time"

	"orderservice/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrOrderIDIsNotConstructed indicates that an OrderID was not properly initialized
// through one of the constructor functions. This error is returned when validating
// a zero-value OrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderID must be created via NewOrderID or OrderIDFromString",
)

const (
	orderIDTimestampLayout = "20060102150405"
	orderIDSuffixLength    = 4
	orderIDLength          = len(orderIDTimestampLayout) + 1 + orderIDSuffixLength
)

// OrderID is a value object that identifies one order. Its string form is
// "<14-digit local timestamp YYYYMMDDHHMMSS>-<4-character random suffix>",
// e.g. "20240117093045-a3f1". The identifier doubles as the idempotency key
// for calls to collaborating services, so it is generated before any external
// call that needs to be keyed by the order.
//
// The suffix is drawn from a 4-hex-character space, so two ids generated
// within the same second collide with probability 1/65536. Collisions are
// possible and surface as a primary-key conflict at persist time; they are
// not silently resolved here.
//
// The zero value of OrderID is invalid and must be constructed using NewOrderID
// or OrderIDFromString.
//
// Example usage:
//
//	// Generate a fresh identifier for a new order
//	id := kernel.NewOrderID(time.Now())
//
//	// Parse an identifier received from a caller
//	id, err := kernel.OrderIDFromString("20240117093045-a3f1")
//	if err != nil {
//	    // handle error
//	}
type OrderID struct {
	value string
}

// NewOrderID generates a new order identifier from the given local time and
// a random 4-character suffix.
func NewOrderID(now time.Time) OrderID {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:orderIDSuffixLength]
	return OrderID{
		value: now.Format(orderIDTimestampLayout) + "-" + suffix,
	}
}

// OrderIDFromString parses an order identifier from its string representation.
// Returns an error if the value does not match the
// "<14-digit timestamp>-<4-character suffix>" format.
func OrderIDFromString(value string) (OrderID, error) {
	if value == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderID")
	}

	if len(value) != orderIDLength || value[len(orderIDTimestampLayout)] != '-' {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("%q does not match the <timestamp>-<suffix> format", value))
	}

	timestamp := value[:len(orderIDTimestampLayout)]
	if _, err := time.Parse(orderIDTimestampLayout, timestamp); err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}

	return OrderID{value: value}, nil
}

// Validate checks that the OrderID was created through a constructor.
// Returns ErrOrderIDIsNotConstructed for the zero value.
func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}

// String returns the canonical string representation of the identifier.
// This method implements the fmt.Stringer interface.
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two order identifiers by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

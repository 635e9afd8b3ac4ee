package order

import (
	"errors"
	"fmt"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents one customer purchase transaction. It is the aggregate
// root that owns the ordered line items, the monetary totals, and the overall
// lifecycle status.
//
// Order follows these invariants:
//   - Must have a valid identifier, customer, member, recipient, and at least one line item
//   - Monetary totals must not be negative
//   - Every overall-status mutation and every line-item-status mutation is
//     validated against the transition policy using the current status as the
//     precondition before the mutation is applied
//   - Can only be created through NewOrder (or RestoreOrder from persistence)
//
// Orders are never physically deleted: Canceled and Refunded are logical
// terminal states. The version field supports optimistic concurrency control;
// repositories check it at persist time and reject stale writes, so two
// concurrent validate-then-mutate sequences on the same order cannot both win.
type Order struct {
	id             kernel.OrderID
	customerID     int64
	memberID       string
	recipient      Recipient
	items          []LineItem
	originAmount   int
	discountAmount int
	paymentAmount  int
	deliveryFee    int
	memo           string
	createdAt      time.Time
	status         Status
	version        int64

	isConstructed bool
}

// NewOrder creates a new Order in the initial Pending status with version 1.
// This is the only way to create a valid Order for a fresh placement.
//
// The monetary totals are the net amounts to persist; the placement flow
// subtracts amounts attributable to canceled line items before calling this
// constructor, so the persisted order always reflects the net payable amount.
func NewOrder(
	id kernel.OrderID,
	customerID int64,
	memberID string,
	recipient Recipient,
	items []LineItem,
	originAmount, discountAmount, paymentAmount, deliveryFee int,
	memo string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		memo:          memo,
		createdAt:     createdAt,
		status:        Pending,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setMemberID(memberID),
		o.setRecipient(recipient),
		o.setItems(items),
		o.setAmounts(originAmount, discountAmount, paymentAmount, deliveryFee),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its status
// and version. Used by repositories only.
func RestoreOrder(
	id kernel.OrderID,
	customerID int64,
	memberID string,
	recipient Recipient,
	items []LineItem,
	originAmount, discountAmount, paymentAmount, deliveryFee int,
	memo string,
	createdAt time.Time,
	status Status,
	version int64,
) (*Order, error) {
	o, err := NewOrder(id, customerID, memberID, recipient, items,
		originAmount, discountAmount, paymentAmount, deliveryFee, memo, createdAt)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version <= 0 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not greater than 0", version))
	}

	o.status = status
	o.version = version
	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// CustomerID returns the seller-side customer identifier.
func (o *Order) CustomerID() int64 {
	return o.customerID
}

// MemberID returns the identifier of the member who placed the order.
func (o *Order) MemberID() string {
	return o.memberID
}

// Recipient returns the delivery contact for the order.
func (o *Order) Recipient() Recipient {
	return o.recipient
}

// Items returns the ordered line items in order of entry.
// The returned slice elements can be mutated through their pointer receivers;
// callers outside the domain must treat them as read-only.
func (o *Order) Items() []LineItem {
	return o.items
}

// OriginAmount returns the net product amount before discount.
func (o *Order) OriginAmount() int {
	return o.originAmount
}

// DiscountAmount returns the net discount amount.
func (o *Order) DiscountAmount() int {
	return o.discountAmount
}

// PaymentAmount returns the net payable amount.
func (o *Order) PaymentAmount() int {
	return o.paymentAmount
}

// DeliveryFee returns the delivery fee.
func (o *Order) DeliveryFee() int {
	return o.deliveryFee
}

// Memo returns the buyer's order memo.
func (o *Order) Memo() string {
	return o.memo
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the overall status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the optimistic-concurrency version of the aggregate.
func (o *Order) Version() int64 {
	return o.version
}

// ChangeStatus transitions the overall status to requested after validating
// the transition policy against the order's current status. On success the
// new status is applied to the order and uniformly to every one of its line
// items, and the version is bumped.
//
// Returns a TransitionViolationError if the order's current status is not in
// the allowed-predecessor set of the requested status.
func (o *Order) ChangeStatus(policy TransitionPolicy, requested Status) error {
	if !policy.IsAllowed(o.status, requested) {
		return NewTransitionViolationError(o.status, requested)
	}

	o.status = requested
	for i := range o.items {
		o.items[i].status = requested
	}
	o.version++
	return nil
}

// ChangeItemStatus transitions a single line item identified by productID,
// validating the policy against the item's own current status and restricting
// the target to the line-item set (Canceled, RefundRequest, Refunded).
// The overall order status is left untouched; divergence along this path is
// the documented exception to order/item status consistency.
func (o *Order) ChangeItemStatus(policy TransitionPolicy, productID int64, requested Status) error {
	for i := range o.items {
		if o.items[i].productID != productID {
			continue
		}

		if err := o.items[i].ChangeStatus(policy, requested); err != nil {
			return err
		}
		o.version++
		return nil
	}

	return errs.NewObjectNotFoundError("productID", fmt.Sprintf("%d", productID))
}

// CompletePayment transitions the order to PaymentCompleted after successful
// payment authorization during placement. Every line item still in the
// initial Pending status follows the order; items already Canceled by the
// availability check are left Canceled.
func (o *Order) CompletePayment(policy TransitionPolicy) error {
	if !policy.IsAllowed(o.status, PaymentCompleted) {
		return NewTransitionViolationError(o.status, PaymentCompleted)
	}

	o.status = PaymentCompleted
	for i := range o.items {
		if o.items[i].status == Pending {
			o.items[i].status = PaymentCompleted
		}
	}
	o.version++
	return nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("customerID",
			fmt.Errorf("%d is not greater than 0", customerID))
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setMemberID(memberID string) error {
	if memberID == "" {
		return errs.NewValueIsRequiredError("memberID")
	}
	o.memberID = memberID
	return nil
}

func (o *Order) setRecipient(recipient Recipient) error {
	if err := recipient.Validate(); err != nil {
		return err
	}
	o.recipient = recipient
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order line items")
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setAmounts(originAmount, discountAmount, paymentAmount, deliveryFee int) error {
	for name, v := range map[string]int{
		"originAmount":   originAmount,
		"discountAmount": discountAmount,
		"paymentAmount":  paymentAmount,
		"deliveryFee":    deliveryFee,
	} {
		if v < 0 {
			return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is negative", v))
		}
	}

	o.originAmount = originAmount
	o.discountAmount = discountAmount
	o.paymentAmount = paymentAmount
	o.deliveryFee = deliveryFee
	return nil
}

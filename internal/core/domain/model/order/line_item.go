package order

import (
	"errors"
	"fmt"

	"orderservice/internal/pkg/errs"
)

// ErrLineItemIsNotConstructed is returned when a LineItem instance was not created
// through the NewLineItem factory method.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// lineItemTargets is the restricted set of statuses a single line item may be
// moved to independently of its parent order.
func lineItemTargets() map[Status]struct{} {
	return map[Status]struct{}{
		Canceled:      {},
		RefundRequest: {},
		Refunded:      {},
	}
}

// LineItem is one product-quantity entry within an order. Line items are
// owned by their Order and have no identity outside it; the order of entry is
// preserved for display.
//
// The price fields are supplied by the caller and assumed consistent
// (finalPrice = originPrice - discountAmount); the domain does not recompute
// them.
type LineItem struct {
	productID      int64
	couponID       *int64
	name           string
	originPrice    int
	discountAmount int
	finalPrice     int
	quantity       int
	status         Status

	isConstructed bool
}

// NewLineItem creates a line item in the initial Pending status.
// Product id and quantity must be positive; prices must not be negative.
func NewLineItem(productID int64, couponID *int64, name string,
	originPrice, discountAmount, finalPrice, quantity int,
) (LineItem, error) {
	item := LineItem{
		couponID:      couponID,
		name:          name,
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setPrices(originPrice, discountAmount, finalPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// RestoreLineItem reconstructs a line item from persistence, including its status.
func RestoreLineItem(productID int64, couponID *int64, name string,
	originPrice, discountAmount, finalPrice, quantity int, status Status,
) (LineItem, error) {
	item, err := NewLineItem(productID, couponID, name, originPrice, discountAmount, finalPrice, quantity)
	if err != nil {
		return LineItem{}, err
	}

	if err := status.Validate(); err != nil {
		return LineItem{}, err
	}
	item.status = status

	return item, nil
}

// Validate ensures the LineItem was created through its constructor.
func (li *LineItem) Validate() error {
	if li == nil || !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ProductID returns the ordered product's identifier.
func (li *LineItem) ProductID() int64 {
	return li.productID
}

// CouponID returns the coupon applied to this item, or nil.
func (li *LineItem) CouponID() *int64 {
	return li.couponID
}

// Name returns the product name as submitted with the order.
func (li *LineItem) Name() string {
	return li.name
}

// OriginPrice returns the aggregate price before discount.
func (li *LineItem) OriginPrice() int {
	return li.originPrice
}

// DiscountAmount returns the aggregate discount for this item.
func (li *LineItem) DiscountAmount() int {
	return li.discountAmount
}

// FinalPrice returns the aggregate price after discount.
func (li *LineItem) FinalPrice() int {
	return li.finalPrice
}

// Quantity returns the ordered quantity.
func (li *LineItem) Quantity() int {
	return li.quantity
}

// Status returns the item's current status.
func (li *LineItem) Status() Status {
	return li.status
}

// Cancel marks the item Canceled. Used during placement for items the stock
// service reported unavailable; such items carry no separate release signal.
func (li *LineItem) Cancel() {
	li.status = Canceled
}

// ChangeStatus moves the item to one of the line-item targets (Canceled,
// RefundRequest, Refunded) after checking the policy against the item's own
// current status. Any other requested target is rejected outright regardless
// of predecessor.
func (li *LineItem) ChangeStatus(policy TransitionPolicy, requested Status) error {
	if _, ok := lineItemTargets()[requested]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid line item status change target", requested))
	}

	if !policy.IsAllowed(li.status, requested) {
		return NewTransitionViolationError(li.status, requested)
	}

	li.status = requested
	return nil
}

func (li *LineItem) setProductID(productID int64) error {
	if productID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("productID",
			fmt.Errorf("%d is not greater than 0", productID))
	}
	li.productID = productID
	return nil
}

func (li *LineItem) setPrices(originPrice, discountAmount, finalPrice int) error {
	if originPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("originPrice",
			fmt.Errorf("%d is negative", originPrice))
	}
	if discountAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount",
			fmt.Errorf("%d is negative", discountAmount))
	}
	if finalPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("finalPrice",
			fmt.Errorf("%d is negative", finalPrice))
	}

	li.originPrice = originPrice
	li.discountAmount = discountAmount
	li.finalPrice = finalPrice
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

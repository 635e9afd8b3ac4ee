package services

import (
	"orderservice/internal/core/domain/model/order"
)

// Settlement summarizes the result of reconciling a set of line items against
// a stock availability report. The canceled amounts are the portions of the
// originally submitted totals that must be subtracted before charging the
// customer.
type Settlement struct {
	// CanceledOriginAmount is the pre-discount total of all canceled items.
	CanceledOriginAmount int

	// CanceledDiscountAmount is the discount total of all canceled items.
	CanceledDiscountAmount int

	// CanceledPaymentAmount is the post-discount total of all canceled items,
	// i.e. the amount the customer is no longer charged.
	CanceledPaymentAmount int

	// CanceledCount is the number of items marked canceled.
	CanceledCount int
}

// AllCanceled reports whether every item in the settled set was canceled.
// The order is still placed in that case, with a payment amount reduced by
// the canceled totals.
func (s Settlement) AllCanceled(total int) bool {
	return total > 0 && s.CanceledCount == total
}

// AvailabilitySettler is a domain service that reconciles the line items of an
// order being placed against the stock service's availability report.
//
// Key responsibilities:
//   - Canceling items the stock service reported unavailable
//   - Accumulating the canceled origin, discount, and payment totals
//   - Leaving available items untouched in their Pending status
//
// Business rules:
//   - An item missing from the availability report is treated as unavailable
//   - Canceled items stay on the order for display; they are never removed
//   - The order is placed even when every item is canceled
//
// Example usage:
//
//	settler := NewAvailabilitySettler()
//	settlement, err := settler.Settle(items, availability)
//	if err != nil {
//	    // an item was not properly constructed
//	    return
//	}
//	paymentAmount := submittedAmount - settlement.CanceledPaymentAmount
type AvailabilitySettler struct{}

// NewAvailabilitySettler creates a new AvailabilitySettler instance.
//
// Returns:
//   - AvailabilitySettler: A new instance ready for settlement operations
func NewAvailabilitySettler() AvailabilitySettler {
	return AvailabilitySettler{}
}

// Settle cancels every line item whose product the availability report marks
// unavailable (or omits) and returns the accumulated canceled totals.
//
// Parameters:
//   - items: The line items of the order being placed; canceled in place
//   - availability: Product id to availability flag, as reported by the stock service
//
// Returns:
//   - Settlement: The canceled totals and count
//   - error: A validation error if any item was not created via its constructor
func (a AvailabilitySettler) Settle(items []order.LineItem, availability map[int64]bool) (Settlement, error) {
	var settlement Settlement

	for i := range items {
		item := &items[i]
		if err := item.Validate(); err != nil {
			return Settlement{}, err
		}

		if availability[item.ProductID()] {
			continue
		}

		item.Cancel()
		settlement.CanceledOriginAmount += item.OriginPrice()
		settlement.CanceledDiscountAmount += item.DiscountAmount()
		settlement.CanceledPaymentAmount += item.FinalPrice()
		settlement.CanceledCount++
	}

	return settlement, nil
}

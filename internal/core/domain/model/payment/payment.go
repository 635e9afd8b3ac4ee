// Package payment provides the payment record created once per order at
// placement time. Later refunds and cancellations are modeled as order status
// transitions, not as mutations of this record.
package payment

import (
	"errors"
	"fmt"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through the NewPayment factory method.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment is the one-to-one payment record for an order. The origin,
// discount, and payment amounts are net amounts: the placement flow subtracts
// the totals attributable to canceled line items before building the record.
type Payment struct {
	orderID        kernel.OrderID
	cardNumber     string
	deliveryFee    int
	discountAmount int
	paymentAmount  int
	originAmount   int
	createdAt      time.Time

	isConstructed bool
}

// NewPayment creates the payment record for an order.
// Amounts must not be negative; a zero payment amount is legal (an order whose
// every line item was canceled during placement still gets a record).
func NewPayment(orderID kernel.OrderID, cardNumber string,
	deliveryFee, discountAmount, paymentAmount, originAmount int,
	createdAt time.Time,
) (*Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if cardNumber == "" {
		return nil, errs.NewValueIsRequiredError("cardNumber")
	}
	for name, v := range map[string]int{
		"deliveryFee":    deliveryFee,
		"discountAmount": discountAmount,
		"paymentAmount":  paymentAmount,
		"originAmount":   originAmount,
	} {
		if v < 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is negative", v))
		}
	}

	return &Payment{
		orderID:        orderID,
		cardNumber:     cardNumber,
		deliveryFee:    deliveryFee,
		discountAmount: discountAmount,
		paymentAmount:  paymentAmount,
		originAmount:   originAmount,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

// RestorePayment reconstructs a payment record from persistence.
func RestorePayment(orderID kernel.OrderID, cardNumber string,
	deliveryFee, discountAmount, paymentAmount, originAmount int,
	createdAt time.Time,
) (*Payment, error) {
	return NewPayment(orderID, cardNumber, deliveryFee, discountAmount, paymentAmount, originAmount, createdAt)
}

// Validate ensures the Payment was created through its constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// OrderID returns the identifier of the paid order.
func (p *Payment) OrderID() kernel.OrderID {
	return p.orderID
}

// CardNumber returns the card reference used for authorization.
func (p *Payment) CardNumber() string {
	return p.cardNumber
}

// DeliveryFee returns the delivery fee charged with the order.
func (p *Payment) DeliveryFee() int {
	return p.deliveryFee
}

// DiscountAmount returns the net discount amount.
func (p *Payment) DiscountAmount() int {
	return p.discountAmount
}

// PaymentAmount returns the net authorized amount.
func (p *Payment) PaymentAmount() int {
	return p.paymentAmount
}

// OriginAmount returns the net product amount before discount.
func (p *Payment) OriginAmount() int {
	return p.originAmount
}

// CreatedAt returns the record creation timestamp.
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

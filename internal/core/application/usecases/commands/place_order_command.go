package commands

import (
	"errors"
	"fmt"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderItem is one product entry of a placement request. Prices are the
// aggregate amounts for the requested quantity, as submitted by the caller.
type PlaceOrderItem struct {
	ProductID      int64
	CouponID       *int64
	Name           string
	OriginPrice    int
	DiscountAmount int
	FinalPrice     int
	Quantity       int
}

// PlaceOrderCommand represents a request to place a new order for a customer.
// Carries the full submitted order: recipient, line items, monetary totals,
// and the card to charge.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(customerID, memberID,
//	    "Jane", "010-1234-5678", "12 Elm St", items,
//	    3000, 500, 2500, 0, "leave at door", "4111-1111-1111-1111")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID     int64
	memberID       string
	recipientName  string
	recipientPhone string
	recipientAddr  string
	items          []PlaceOrderItem
	originAmount   int
	discountAmount int
	paymentAmount  int
	deliveryFee    int
	memo           string
	cardNumber     string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that the customer, member, recipient, items, totals, and card are
// all present and well formed. Returns an error if any validation fails.
func NewPlaceOrderCommand(customerID int64, memberID string,
	recipientName, recipientPhone, recipientAddr string,
	items []PlaceOrderItem,
	originAmount, discountAmount, paymentAmount, deliveryFee int,
	memo, cardNumber string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		memo:  memo,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setMemberID(memberID),
		cmd.setRecipient(recipientName, recipientPhone, recipientAddr),
		cmd.setItems(items),
		cmd.setAmounts(originAmount, discountAmount, paymentAmount, deliveryFee),
		cmd.setCardNumber(cardNumber),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer's identifier.
func (c PlaceOrderCommand) CustomerID() int64 {
	return c.customerID
}

// MemberID returns the acting member's identifier.
func (c PlaceOrderCommand) MemberID() string {
	return c.memberID
}

// RecipientName returns the delivery recipient's name.
func (c PlaceOrderCommand) RecipientName() string {
	return c.recipientName
}

// RecipientPhone returns the delivery recipient's phone number.
func (c PlaceOrderCommand) RecipientPhone() string {
	return c.recipientPhone
}

// RecipientAddr returns the delivery address.
func (c PlaceOrderCommand) RecipientAddr() string {
	return c.recipientAddr
}

// Items returns the submitted line items.
func (c PlaceOrderCommand) Items() []PlaceOrderItem {
	return c.items
}

// OriginAmount returns the submitted pre-discount total.
func (c PlaceOrderCommand) OriginAmount() int {
	return c.originAmount
}

// DiscountAmount returns the submitted discount total.
func (c PlaceOrderCommand) DiscountAmount() int {
	return c.discountAmount
}

// PaymentAmount returns the submitted payable total.
func (c PlaceOrderCommand) PaymentAmount() int {
	return c.paymentAmount
}

// DeliveryFee returns the delivery fee.
func (c PlaceOrderCommand) DeliveryFee() int {
	return c.deliveryFee
}

// Memo returns the free-form order memo.
func (c PlaceOrderCommand) Memo() string {
	return c.memo
}

// CardNumber returns the card to charge.
func (c PlaceOrderCommand) CardNumber() string {
	return c.cardNumber
}

func (c *PlaceOrderCommand) setCustomerID(customerID int64) error {
	if customerID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("customerID",
			fmt.Errorf("%d is not greater than 0", customerID))
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setMemberID(memberID string) error {
	if memberID == "" {
		return errs.NewValueIsRequiredError("memberID")
	}

	c.memberID = memberID
	return nil
}

func (c *PlaceOrderCommand) setRecipient(name, phone, addr string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("recipientPhone")
	}
	if addr == "" {
		return errs.NewValueIsRequiredError("recipientAddr")
	}

	c.recipientName = name
	c.recipientPhone = phone
	c.recipientAddr = addr
	return nil
}

func (c *PlaceOrderCommand) setItems(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = items
	return nil
}

func (c *PlaceOrderCommand) setAmounts(originAmount, discountAmount, paymentAmount, deliveryFee int) error {
	for name, amount := range map[string]int{
		"originAmount":   originAmount,
		"discountAmount": discountAmount,
		"paymentAmount":  paymentAmount,
		"deliveryFee":    deliveryFee,
	} {
		if amount < 0 {
			return errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%d is negative", amount))
		}
	}

	c.originAmount = originAmount
	c.discountAmount = discountAmount
	c.paymentAmount = paymentAmount
	c.deliveryFee = deliveryFee
	return nil
}

func (c *PlaceOrderCommand) setCardNumber(cardNumber string) error {
	if cardNumber == "" {
		return errs.NewValueIsRequiredError("cardNumber")
	}

	c.cardNumber = cardNumber
	return nil
}

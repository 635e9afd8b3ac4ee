package order

import (
	"errors"

	"orderservice/internal/pkg/errs"
)

// ErrRecipientIsNotConstructed is returned when a Recipient instance was not
// created through the NewRecipient factory method.
var ErrRecipientIsNotConstructed = errors.New("Recipient must be created via NewRecipient constructor")

// Recipient is a value object holding the delivery contact for an order.
type Recipient struct {
	name        string
	phoneNumber string
	address     string

	isConstructed bool
}

// NewRecipient creates a Recipient. All three fields are required.
func NewRecipient(name, phoneNumber, address string) (Recipient, error) {
	if name == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient name")
	}
	if phoneNumber == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient phone number")
	}
	if address == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient address")
	}

	return Recipient{
		name:          name,
		phoneNumber:   phoneNumber,
		address:       address,
		isConstructed: true,
	}, nil
}

// Validate ensures the Recipient was created through its constructor.
func (r Recipient) Validate() error {
	if !r.isConstructed {
		return ErrRecipientIsNotConstructed
	}
	return nil
}

// Name returns the recipient's name.
func (r Recipient) Name() string {
	return r.name
}

// PhoneNumber returns the recipient's phone number.
func (r Recipient) PhoneNumber() string {
	return r.phoneNumber
}

// Address returns the delivery address.
func (r Recipient) Address() string {
	return r.address
}

package payment_test

import (
	"testing"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/payment"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	now := time.Now()
	orderID := kernel.NewOrderID(now)

	t.Run("creates a record with net amounts", func(t *testing.T) {
		record, err := payment.NewPayment(orderID, "4111-1111-1111-1111", 500, 100, 2400, 2000, now)

		require.NoError(t, err)
		require.NoError(t, record.Validate())
		assert.True(t, orderID.IsEqual(record.OrderID()))
		assert.Equal(t, "4111-1111-1111-1111", record.CardNumber())
		assert.Equal(t, 500, record.DeliveryFee())
		assert.Equal(t, 100, record.DiscountAmount())
		assert.Equal(t, 2400, record.PaymentAmount())
		assert.Equal(t, 2000, record.OriginAmount())
		assert.Equal(t, now, record.CreatedAt())
	})

	t.Run("allows a zero payment amount", func(t *testing.T) {
		record, err := payment.NewPayment(orderID, "4111", 0, 0, 0, 0, now)

		require.NoError(t, err)
		assert.Equal(t, 0, record.PaymentAmount())
	})

	t.Run("rejects an invalid order id", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.OrderID{}, "4111", 0, 0, 100, 100, now)

		require.Error(t, err)
	})

	t.Run("rejects an empty card number", func(t *testing.T) {
		_, err := payment.NewPayment(orderID, "", 0, 0, 100, 100, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := payment.NewPayment(orderID, "4111", 0, -1, 100, 100, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPayment_Validate_NotConstructed(t *testing.T) {
	var record payment.Payment

	err := record.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, payment.ErrPaymentIsNotConstructed)
}

package guard_test

import (
	"errors"
	"testing"

	"orderservice/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errors.New("not constructed")))
	require.NoError(t, g.Validate(nil))
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		notConstructed := errors.New("Recipient must be created via NewRecipient constructor")

		err := g.Validate(notConstructed)

		require.Error(t, err)
		assert.Equal(t, notConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_names_the_constructor_requirement", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuard_InValueObject exercises the pattern every command and
// value object in this module follows: private fields, a constructor that
// arms the guard, and a Validate method that rejects zero values.
func TestConstructorGuard_InValueObject(t *testing.T) {
	type cardNumber struct {
		value string
		guard guard.ConstructorGuard
	}

	var errCardNumberNotConstructed = errors.New("cardNumber must be created via newCardNumber constructor")

	newCardNumber := func(value string) (cardNumber, error) {
		if value == "" {
			return cardNumber{}, errors.New("card number is required")
		}
		return cardNumber{value: value, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_passes_validation", func(t *testing.T) {
		card, err := newCardNumber("4111-1111-1111-1111")

		require.NoError(t, err)
		require.NoError(t, card.guard.Validate(errCardNumberNotConstructed))
		assert.Equal(t, "4111-1111-1111-1111", card.value)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var card cardNumber

		err := card.guard.Validate(errCardNumberNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errCardNumberNotConstructed, err)
	})

	t.Run("rejected_construction_leaves_guard_unarmed", func(t *testing.T) {
		card, err := newCardNumber("")

		require.Error(t, err)
		assert.Error(t, card.guard.Validate(errCardNumberNotConstructed))
	})
}

// The guard carries no mutable state, so copies validate independently and
// concurrent reads are safe.
func TestConstructorGuard_CopyAndConcurrency(t *testing.T) {
	t.Run("copies_validate_independently", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		copied := g

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, copied.Validate(errors.New("not constructed")))
	})

	t.Run("concurrent_validation", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		notConstructed := errors.New("not constructed")

		done := make(chan struct{})
		for range 50 {
			go func() {
				for range 500 {
					assert.NoError(t, g.Validate(notConstructed))
				}
				done <- struct{}{}
			}()
		}
		for range 50 {
			<-done
		}
	})
}

package guard_test

import (
	"errors"
	"testing"

	"mealdispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("quote must be created via NewQuote")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type quote struct {
		subtotal int
		guard    guard.ConstructorGuard
	}
	errQuoteNotConstructed := errors.New("quote must be created via newQuote")

	newQuote := func(subtotal int) (quote, error) {
		if subtotal < 0 {
			return quote{}, errors.New("subtotal cannot be negative")
		}
		return quote{subtotal: subtotal, guard: guard.NewConstructorGuard()}, nil
	}

	q, err := newQuote(100)
	require.NoError(t, err)
	require.NoError(t, q.guard.Validate(errQuoteNotConstructed))

	var literal quote
	require.ErrorIs(t, literal.guard.Validate(errQuoteNotConstructed), errQuoteNotConstructed)

	_, err = newQuote(-1)
	require.Error(t, err)
}

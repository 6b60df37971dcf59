package order_test

import (
	"testing"

	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{order.Pending, order.Confirmed, true},
		{order.Confirmed, order.Preparing, true},
		{order.Preparing, order.Ready, true},
		{order.Ready, order.Delivering, true},
		{order.Delivering, order.Delivered, true},
		{order.Pending, order.Cancelled, true},
		{order.Ready, order.Cancelled, true},
		{order.Delivering, order.Cancelled, true},
		{order.Pending, order.Ready, false},
		{order.Ready, order.Preparing, false},
		{order.Delivering, order.Ready, false},
		{order.Delivered, order.Cancelled, false},
		{order.Cancelled, order.Pending, false},
		{order.Delivered, order.Delivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			next, err := tt.from.TransitionTo(tt.to)

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, next)
				return
			}
			require.ErrorIs(t, err, order.ErrInvalidTransition)
			require.ErrorIs(t, err, errs.ErrConflict)
		})
	}
}

func TestStatus_TransitionTo_UnknownTarget(t *testing.T) {
	_, err := order.Pending.TransitionTo(order.Unknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus(" Ready ")
	require.NoError(t, err)
	assert.Equal(t, order.Ready, s)

	_, err = order.ParseStatus("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.ParseStatus("shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Delivering.IsTerminal())
	assert.Equal(t, "unknown", order.Status(42).String())
}

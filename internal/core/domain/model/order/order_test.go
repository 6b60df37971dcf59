package order_test

import (
	"testing"
	"time"

	"mealdispatch/internal/core/domain/events"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newItem(t *testing.T, name string, qty int, price string) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), name, qty, money(t, price))
	require.NoError(t, err)
	return item
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{newItem(t, "Margherita", 2, "12.50"), newItem(t, "Cola", 1, "3.00")},
		"12 Baker St", "ring twice", time.Now(),
	)
	require.NoError(t, err)
	return o
}

func advanceTo(t *testing.T, o *order.Order, path ...order.Status) {
	t.Helper()
	for _, s := range path {
		require.NoError(t, o.TransitionTo(s, time.Now()))
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("total is the sum of line subtotals", func(t *testing.T) {
		o := newOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "28.00", o.Total().String())
		assert.Len(t, o.Items(), 2)
		assert.Empty(t, o.DomainEvents())
		require.NoError(t, o.Validate())
	})

	t.Run("empty items are rejected", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, "12 Baker St", "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("all invalid fields are reported together", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, kernel.NewUUID(),
			[]order.Item{newItem(t, "Soup", 1, "5")}, "  ", "", time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "customer id")
		assert.Contains(t, err.Error(), "delivery address")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestNewItem(t *testing.T) {
	_, err := order.NewItem(kernel.NewUUID(), "Soup", 0, money(t, "5"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.NewItem(kernel.NewUUID(), "", 1, money(t, "5"))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = order.NewItem(kernel.NewUUID(), "Soup", order.MaxItemQuantity+1, money(t, "5"))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	item := newItem(t, "Soup", 3, "4.10")
	assert.Equal(t, "12.30", item.Subtotal().String())

	largest := newItem(t, "Soup", order.MaxItemQuantity, "5")
	assert.Equal(t, "5000.00", largest.Subtotal().String())
}

func TestNewOrder_TotalAboveStorableAmountIsRejected(t *testing.T) {
	banquet := newItem(t, "Banquet", order.MaxItemQuantity, "9999999.99")

	_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{banquet, banquet}, "12 Baker St", "", time.Now())

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "total")
}

func TestOrder_TransitionTo_RecordsEvents(t *testing.T) {
	o := newOrder(t)

	advanceTo(t, o, order.Confirmed, order.Preparing)
	assert.Empty(t, o.DomainEvents())

	advanceTo(t, o, order.Ready)
	require.Len(t, o.DomainEvents(), 1)
	ready, ok := o.DomainEvents()[0].(events.OrderReady)
	require.True(t, ok)
	assert.True(t, ready.OrderID.IsEqual(o.ID()))
	assert.True(t, ready.Total.IsEqual(o.Total()))

	o.ClearDomainEvents()
	advanceTo(t, o, order.Delivering, order.Delivered)
	require.Len(t, o.DomainEvents(), 1)
	assert.Equal(t, events.NameOrderDelivered, o.DomainEvents()[0].EventName())
}

func TestOrder_TransitionTo_Invalid(t *testing.T) {
	o := newOrder(t)

	err := o.TransitionTo(order.Delivered, time.Now())

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Pending, o.Status())
}

func TestOrder_TotalIsImmutable(t *testing.T) {
	o := newOrder(t)
	before := o.Total()

	advanceTo(t, o, order.Confirmed, order.Preparing, order.Ready, order.Delivering, order.Delivered)

	assert.True(t, before.IsEqual(o.Total()))
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("from any non-terminal status", func(t *testing.T) {
		o := newOrder(t)
		advanceTo(t, o, order.Confirmed)

		require.NoError(t, o.Cancel(" customer changed mind ", time.Now()))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "customer changed mind", o.CancellationReason())
		require.Len(t, o.DomainEvents(), 1)
		cancelled := o.DomainEvents()[0].(events.OrderCancelled)
		assert.Equal(t, "customer changed mind", cancelled.Reason)
	})

	t.Run("terminal orders stay terminal", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel("", time.Now()))

		require.ErrorIs(t, o.Cancel("again", time.Now()), order.ErrInvalidTransition)
		require.ErrorIs(t, o.TransitionTo(order.Confirmed, time.Now()), order.ErrInvalidTransition)
	})

	t.Run("TransitionTo cancelled delegates to Cancel", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.TransitionTo(order.Cancelled, time.Now()))
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_ReturnToPool(t *testing.T) {
	o := newOrder(t)
	advanceTo(t, o, order.Confirmed, order.Preparing, order.Ready)
	require.ErrorIs(t, o.ReturnToPool(time.Now()), order.ErrInvalidTransition)

	advanceTo(t, o, order.Delivering)
	o.ClearDomainEvents()

	require.NoError(t, o.ReturnToPool(time.Now()))
	assert.Equal(t, order.Ready, o.Status())
	require.Len(t, o.DomainEvents(), 1)
	assert.Equal(t, events.NameOrderReady, o.DomainEvents()[0].EventName())
}

func TestRestoreOrder(t *testing.T) {
	item := newItem(t, "Soup", 1, "5")
	now := time.Now()

	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{item}, money(t, "5"), order.Delivering, "addr", "", "", now, now)
	require.NoError(t, err)
	assert.Equal(t, order.Delivering, o.Status())
	assert.Empty(t, o.DomainEvents())

	_, err = order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{item}, money(t, "5"), order.Unknown, "addr", "", "", now, now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

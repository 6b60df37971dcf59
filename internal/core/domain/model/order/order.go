package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mealdispatch/internal/core/domain/events"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of the order lifecycle.
//
// Invariants:
//   - at least one line item, items never change after creation
//   - total equals the sum of item subtotals and is fixed at creation
//   - status only moves along the edges described on Status
//
// Status changes record lifecycle events (OrderReady, OrderDelivered, OrderCancelled)
// that the unit of work publishes after commit.
type Order struct {
	id                 kernel.UUID
	customerID         kernel.UUID
	restaurantID       kernel.UUID
	items              []Item
	total              kernel.Money
	status             Status
	deliveryAddress    string
	notes              string
	cancellationReason string
	createdAt          time.Time
	updatedAt          time.Time

	events events.Recorder
	guard  guard.ConstructorGuard
}

// NewOrder creates a pending order and snapshots its total.
//
// Example:
//
//	item, _ := order.NewItem(mealID, "Margherita", 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID,
//	    []order.Item{item}, "12 Baker St", "", time.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []Item,
	deliveryAddress string,
	notes string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		notes:     strings.TrimSpace(notes),
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence without recording events.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []Item,
	total kernel.Money,
	status Status,
	deliveryAddress string,
	notes string,
	cancellationReason string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		total:              total,
		notes:              notes,
		cancellationReason: cancellationReason,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setDeliveryAddress(deliveryAddress),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	o.items = append([]Item(nil), items...)
	o.status = status
	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
// Returns ErrOrderIsNotConstructed if validation fails.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the identifier of the ordering customer.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// RestaurantID returns the identifier of the restaurant.
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }

// Total returns the order total, fixed at creation.
func (o *Order) Total() kernel.Money { return o.total }

// Status returns the current status of the order.
func (o *Order) Status() Status { return o.status }

// DeliveryAddress returns where the order is delivered.
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }

// Notes returns the customer's delivery notes.
func (o *Order) Notes() string { return o.notes }

// CancellationReason returns why the order was cancelled, or an empty string.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the time of the last change to the order.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Items returns a copy of the line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// TransitionTo moves the order along the state machine. Cancellation should go through
// Cancel so a reason is kept.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	if target == Cancelled {
		return o.Cancel("", now)
	}

	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	o.updatedAt = now

	switch next {
	case Ready:
		o.events.Record(events.OrderReady{
			OrderID: o.id, RestaurantID: o.restaurantID, Total: o.total, OccurredAt: now,
		})
	case Delivered:
		o.events.Record(events.OrderDelivered{
			OrderID: o.id, RestaurantID: o.restaurantID, Total: o.total, OccurredAt: now,
		})
	default:
	}

	return nil
}

// Cancel moves any non-terminal order to Cancelled.
func (o *Order) Cancel(reason string, now time.Time) error {
	next, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = next
	o.cancellationReason = strings.TrimSpace(reason)
	o.updatedAt = now
	o.events.Record(events.OrderCancelled{
		OrderID: o.id, RestaurantID: o.restaurantID, Reason: o.cancellationReason, OccurredAt: now,
	})
	return nil
}

// ReturnToPool puts a delivering order back to Ready after its assignment was cancelled,
// so another rider can pick it up.
func (o *Order) ReturnToPool(now time.Time) error {
	if o.status != Delivering {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, Ready)
	}

	o.status = Ready
	o.updatedAt = now
	o.events.Record(events.OrderReady{
		OrderID: o.id, RestaurantID: o.restaurantID, Total: o.total, OccurredAt: now,
	})
	return nil
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []events.Event {
	return o.events.Events()
}

func (o *Order) ClearDomainEvents() {
	o.events.Clear()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant id", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	total := kernel.ZeroMoney()
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
		total = total.Add(item.Subtotal())
		if total.GreaterThan(kernel.MaxMoney()) {
			return errs.NewValueIsOutOfRangeError("total", total.String(), "0.01", kernel.MaxMoney().String())
		}
	}

	o.items = append([]Item(nil), items...)
	o.total = total
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = address
	return nil
}

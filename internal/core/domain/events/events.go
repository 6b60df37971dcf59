// Package events declares the lifecycle events raised by the order and assignment
// aggregates. Aggregates record events while they change state; the unit of work
// collects them from every tracked aggregate, runs in-transaction subscribers and
// hands them to the notification dispatcher once the transaction has committed.
package events

import (
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
)

const (
	NameOrderReady        = "order.ready"
	NameAssignmentCreated = "assignment.created"
	NameOrderDelivered    = "order.delivered"
	NameOrderCancelled    = "order.cancelled"
)

// Event is implemented by every lifecycle event. All events concern exactly one order.
type Event interface {
	EventName() string
	EventOrderID() kernel.UUID
	EventTime() time.Time
}

// Source is implemented by aggregates that record events.
type Source interface {
	DomainEvents() []Event
	ClearDomainEvents()
}

type OrderReady struct {
	OrderID      kernel.UUID  `json:"order_id"`
	RestaurantID kernel.UUID  `json:"restaurant_id"`
	Total        kernel.Money `json:"total"`
	OccurredAt   time.Time    `json:"occurred_at"`
}

func (e OrderReady) EventName() string         { return NameOrderReady }
func (e OrderReady) EventOrderID() kernel.UUID { return e.OrderID }
func (e OrderReady) EventTime() time.Time      { return e.OccurredAt }

type AssignmentCreated struct {
	AssignmentID kernel.UUID  `json:"assignment_id"`
	OrderID      kernel.UUID  `json:"order_id"`
	RiderID      kernel.UUID  `json:"rider_id"`
	DeliveryFee  kernel.Money `json:"delivery_fee"`
	OccurredAt   time.Time    `json:"occurred_at"`
}

func (e AssignmentCreated) EventName() string         { return NameAssignmentCreated }
func (e AssignmentCreated) EventOrderID() kernel.UUID { return e.OrderID }
func (e AssignmentCreated) EventTime() time.Time      { return e.OccurredAt }

type OrderDelivered struct {
	OrderID      kernel.UUID  `json:"order_id"`
	RestaurantID kernel.UUID  `json:"restaurant_id"`
	Total        kernel.Money `json:"total"`
	OccurredAt   time.Time    `json:"occurred_at"`
}

func (e OrderDelivered) EventName() string         { return NameOrderDelivered }
func (e OrderDelivered) EventOrderID() kernel.UUID { return e.OrderID }
func (e OrderDelivered) EventTime() time.Time      { return e.OccurredAt }

type OrderCancelled struct {
	OrderID      kernel.UUID `json:"order_id"`
	RestaurantID kernel.UUID `json:"restaurant_id"`
	Reason       string      `json:"reason,omitempty"`
	OccurredAt   time.Time   `json:"occurred_at"`
}

func (e OrderCancelled) EventName() string         { return NameOrderCancelled }
func (e OrderCancelled) EventOrderID() kernel.UUID { return e.OrderID }
func (e OrderCancelled) EventTime() time.Time      { return e.OccurredAt }

// Recorder buffers events inside an aggregate until the unit of work drains them.
type Recorder struct {
	pending []Event
}

// Record appends e to the pending events.
func (r *Recorder) Record(e Event) {
	r.pending = append(r.pending, e)
}

// Events returns a copy of the pending events.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.pending))
	copy(out, r.pending)
	return out
}

func (r *Recorder) Clear() {
	r.pending = nil
}

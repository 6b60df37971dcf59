package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"mealdispatch/internal/core/domain/events"
)

// Message is the JSON envelope written to brokers.
type Message struct {
	Event      string          `json:"event"`
	OrderID    string          `json:"order_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

func encode(event events.Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event.EventName(), err)
	}

	return json.Marshal(Message{
		Event:      event.EventName(),
		OrderID:    event.EventOrderID().String(),
		OccurredAt: event.EventTime().UTC(),
		Payload:    payload,
	})
}

// describe renders a one-line human readable summary for chat channels.
func describe(event events.Event) string {
	switch e := event.(type) {
	case events.OrderReady:
		return fmt.Sprintf("Order %s is ready for pickup (total %s)", e.OrderID, e.Total)
	case events.AssignmentCreated:
		return fmt.Sprintf("Order %s assigned to rider %s (fee %s)", e.OrderID, e.RiderID, e.DeliveryFee)
	case events.OrderDelivered:
		return fmt.Sprintf("Order %s delivered (total %s)", e.OrderID, e.Total)
	case events.OrderCancelled:
		if e.Reason == "" {
			return fmt.Sprintf("Order %s cancelled", e.OrderID)
		}
		return fmt.Sprintf("Order %s cancelled: %s", e.OrderID, e.Reason)
	default:
		return fmt.Sprintf("%s for order %s", event.EventName(), event.EventOrderID())
	}
}

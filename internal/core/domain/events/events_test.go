package events_test

import (
	"testing"
	"time"

	"mealdispatch/internal/core/domain/events"
	"mealdispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	var r events.Recorder
	orderID := kernel.NewUUID()

	r.Record(events.OrderReady{OrderID: orderID, OccurredAt: time.Now()})
	r.Record(events.OrderCancelled{OrderID: orderID, Reason: "kitchen closed"})

	got := r.Events()
	assert.Len(t, got, 2)
	assert.Equal(t, events.NameOrderReady, got[0].EventName())
	assert.Equal(t, events.NameOrderCancelled, got[1].EventName())
	assert.True(t, got[1].EventOrderID().IsEqual(orderID))

	got[0] = nil
	assert.NotNil(t, r.Events()[0], "Events must return a copy")

	r.Clear()
	assert.Empty(t, r.Events())
}

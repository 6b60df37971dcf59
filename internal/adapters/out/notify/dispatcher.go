// Package notify fans committed lifecycle events out to external channels.
//
// The Dispatcher is the ports.EventPublisher handed to the unit of work. Publish only
// enqueues; a single background worker started with Run delivers every event to every
// sink in order. Sink errors and a full queue are logged and counted, never returned to
// the use case that produced the event.
package notify

import (
	"context"
	"log/slog"
	"time"

	"mealdispatch/internal/core/domain/events"
	"mealdispatch/internal/core/ports"
	"mealdispatch/internal/pkg/metrics"
)

const (
	DefaultQueueSize   = 256
	DefaultSinkTimeout = 5 * time.Second
	drainTimeout       = 10 * time.Second
)

type Dispatcher struct {
	queue       chan events.Event
	sinks       []ports.NotificationSink
	sinkTimeout time.Duration
	logger      *slog.Logger
}

// NewDispatcher creates a dispatcher that fans events out to sinks.
// A non-positive queueSize falls back to DefaultQueueSize.
func NewDispatcher(queueSize int, logger *slog.Logger, sinks ...ports.NotificationSink) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		queue:       make(chan events.Event, queueSize),
		sinks:       sinks,
		sinkTimeout: DefaultSinkTimeout,
		logger:      logger.With("component", "notification_dispatcher"),
	}
}

// Publish enqueues evts without blocking. Events that do not fit are dropped.
func (d *Dispatcher) Publish(ctx context.Context, evts []events.Event) {
	for _, event := range evts {
		select {
		case d.queue <- event:
		default:
			metrics.NotificationsDropped.Inc()
			d.logger.WarnContext(ctx, "Notification queue full, dropping event",
				"event", event.EventName(),
				"order_id", event.EventOrderID().String(),
			)
		}
	}
}

// Run delivers queued events until ctx is cancelled, then flushes what is left in the
// queue within a bounded time. It always returns nil.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.InfoContext(ctx, "Notification dispatcher started", "sinks", len(d.sinks))

	for {
		select {
		case <-ctx.Done():
			d.drain()
			d.logger.Info("Notification dispatcher stopped")
			return nil
		case event := <-d.queue:
			d.deliver(ctx, event)
		}
	}
}

func (d *Dispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case event := <-d.queue:
			d.deliver(ctx, event)
		default:
			return
		}
		if ctx.Err() != nil {
			d.logger.Warn("Notification queue not fully drained", "remaining", len(d.queue))
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event events.Event) {
	for _, sink := range d.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, d.sinkTimeout)
		err := sink.Deliver(sinkCtx, event)
		cancel()

		if err != nil {
			metrics.NotificationsFailed.WithLabelValues(sink.Name()).Inc()
			d.logger.ErrorContext(ctx, "Notification delivery failed",
				"sink", sink.Name(),
				"event", event.EventName(),
				"order_id", event.EventOrderID().String(),
				"error", err,
			)
			continue
		}
		metrics.NotificationsDelivered.WithLabelValues(sink.Name()).Inc()
	}
}

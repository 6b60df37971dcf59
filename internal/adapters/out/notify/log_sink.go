package notify

import (
	"context"
	"log/slog"

	"mealdispatch/internal/core/domain/events"
)

// LogSink writes every event to the structured log. It is always enabled.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink that writes events to the application log.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "notify_log_sink")}
}

func (s *LogSink) Name() string { return "log" }

// Deliver logs a human readable line for the event.
func (s *LogSink) Deliver(ctx context.Context, event events.Event) error {
	s.logger.InfoContext(ctx, describe(event),
		"event", event.EventName(),
		"order_id", event.EventOrderID().String(),
		"occurred_at", event.EventTime(),
	)
	return nil
}

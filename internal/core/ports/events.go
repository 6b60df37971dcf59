package ports

import (
	"context"

	"mealdispatch/internal/core/domain/events"
)

// EventDispatcher runs subscribers inside the transaction that raised the event.
// An error aborts the commit.
type EventDispatcher interface {
	Dispatch(ctx context.Context, uow UnitOfWork, event events.Event) error
}

// EventPublisher receives events after their transaction committed. Publishing is best
// effort and never reports failures back to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, evts []events.Event)
}

// NotificationSink delivers one event to an external channel (log, broker, chat).
type NotificationSink interface {
	Name() string

	Deliver(ctx context.Context, event events.Event) error
}

// Package eventhandlers holds the subscribers that run inside the transaction which
// raised an event. A subscriber error aborts the whole transaction.
package eventhandlers

import (
	"context"

	"mealdispatch/internal/core/domain/events"
	"mealdispatch/internal/core/ports"
)

type handlerFunc func(ctx context.Context, uow ports.UnitOfWork, event events.Event) error

// Registry maps event names to subscribers. Subscriptions are declared explicitly at
// startup with Subscribe.
type Registry struct {
	handlers map[string][]handlerFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string][]handlerFunc)}
}

// Subscribe registers h for events of type E.
func Subscribe[E events.Event](r *Registry, h func(ctx context.Context, uow ports.UnitOfWork, event E) error) {
	var zero E
	name := zero.EventName()
	r.handlers[name] = append(r.handlers[name], func(ctx context.Context, uow ports.UnitOfWork, event events.Event) error {
		typed, ok := event.(E)
		if !ok {
			return nil
		}
		return h(ctx, uow, typed)
	})
}

// Dispatch runs every subscriber of event in registration order and stops at the first error.
func (r *Registry) Dispatch(ctx context.Context, uow ports.UnitOfWork, event events.Event) error {
	for _, h := range r.handlers[event.EventName()] {
		if err := h(ctx, uow, event); err != nil {
			return err
		}
	}
	return nil
}

package commands

import (
	"context"
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/rider"
)

type RegisterRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewRegisterRiderCommandHandler creates a handler for register rider requests.
// Requires a RiderUoWFactory for transactional persistence.
func NewRegisterRiderCommandHandler(uowFactory RiderUoWFactory) RegisterRiderCommandHandler {
	return RegisterRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command. New riders start pending approval.
func (h RegisterRiderCommandHandler) Handle(ctx context.Context, command RegisterRiderCommand) (*rider.Rider, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	r, err := rider.NewRider(kernel.NewUUID(), command.Name(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RiderRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

package commands

import (
	"context"
	"errors"
	"time"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/services"
	"mealdispatch/internal/pkg/errs"
)

// AutoAssignCommandHandler is run by the auto-assignment job. Both the order and the
// candidate riders are locked with SKIP LOCKED, so several instances can run side by
// side without handing one rider two orders.
type AutoAssignCommandHandler struct {
	uowFactory UoWFactory
	fees       FeeConfigurationProvider
}

// NewAutoAssignCommandHandler creates a handler for auto assign requests.
// Requires a UoWFactory for transactional persistence and a FeeConfigurationProvider
// for the current delivery fee.
func NewAutoAssignCommandHandler(uowFactory UoWFactory, fees FeeConfigurationProvider) AutoAssignCommandHandler {
	return AutoAssignCommandHandler{
		uowFactory: uowFactory,
		fees:       fees,
	}
}

// Handle returns ErrNoOrderFound or ErrNoEligibleRiders when there is nothing to do.
func (h AutoAssignCommandHandler) Handle(ctx context.Context, command AutoAssignCommand) (*assignment.Assignment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	riderRepo := uow.RiderRepository()

	o, err := orderRepo.GetOldestReadyUnassigned(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoOrderFound
	}
	if err != nil {
		return nil, err
	}

	riders, err := riderRepo.GetAllFree(ctx)
	if err != nil {
		return nil, err
	}
	if len(riders) == 0 {
		return nil, ErrNoEligibleRiders
	}

	a, _, err := services.NewAssignmentDispatcher().Dispatch(o, riders, h.fees.Get(ctx).DeliveryFee(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Add(ctx, a); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

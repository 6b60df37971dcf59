package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/services"
	"mealdispatch/internal/pkg/errs"
)

// AssignRiderCommandHandler creates an assignment for a ready order.
//
// The order row is locked first and the live-assignment check happens before anything
// else, so of two concurrent requests for the same order exactly one succeeds and the
// other gets ErrAlreadyAssigned. The partial unique index on assignments catches
// anything that slips past the lock.
type AssignRiderCommandHandler struct {
	uowFactory UoWFactory
	fees       FeeConfigurationProvider
}

// NewAssignRiderCommandHandler creates a handler for assign rider requests.
// Requires a UoWFactory for transactional persistence and a FeeConfigurationProvider
// for the current delivery fee.
func NewAssignRiderCommandHandler(uowFactory UoWFactory, fees FeeConfigurationProvider) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		fees:       fees,
	}
}

// Handle processes the assignment command.
// The order is locked, checked to be ready and unassigned, and the rider checked
// for eligibility. The new assignment and the order's move to delivering are
// committed together.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, command AssignRiderCommand) (*assignment.Assignment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	deliveryFee, ok := command.DeliveryFee()
	if !ok {
		deliveryFee = h.fees.Get(ctx).DeliveryFee()
	}

	return assignRider(ctx, h.uowFactory, command.OrderID(), command.RiderID(), deliveryFee)
}

func assignRider(
	ctx context.Context,
	uowFactory UoWFactory,
	orderID kernel.UUID,
	riderID kernel.UUID,
	deliveryFee kernel.Money,
) (*assignment.Assignment, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	assignmentRepo := uow.AssignmentRepository()

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	live, err := assignmentRepo.GetActiveByOrder(ctx, orderID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: order %s is held by assignment %s", ErrAlreadyAssigned, orderID, live.ID())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	r, err := uow.RiderRepository().Get(ctx, riderID)
	if err != nil {
		return nil, err
	}

	a, err := services.NewAssignmentDispatcher().Assign(o, r, deliveryFee, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = assignmentRepo.Add(ctx, a); err != nil {
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

package commands

import (
	"context"
	"fmt"
	"time"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/order"
)

// AdvanceAssignmentCommandHandler applies a rider status update and its effect on the order:
//
//	delivered  -> order delivered, rider delivery counter incremented
//	cancelled  -> order returned to ready, back in the pool
//	failed     -> order cancelled with the failure reason
//
// Re-sending the current status changes nothing and commits nothing.
type AdvanceAssignmentCommandHandler struct {
	uowFactory UoWFactory
}

// NewAdvanceAssignmentCommandHandler creates a handler for advance assignment requests.
// Requires a UoWFactory for transactional persistence.
func NewAdvanceAssignmentCommandHandler(uowFactory UoWFactory) AdvanceAssignmentCommandHandler {
	return AdvanceAssignmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment status command.
// In one transaction it locks the order and then the assignment, checks ownership,
// applies the transition and mirrors it onto the order. Delivery also bumps the
// rider's delivery count. Repeating the current status is a no-op.
func (h AdvanceAssignmentCommandHandler) Handle(
	ctx context.Context,
	command AdvanceAssignmentCommand,
) (*assignment.Assignment, error) {
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
	assignmentRepo := uow.AssignmentRepository()

	// Orders are locked before assignments everywhere.
	current, err := assignmentRepo.Get(ctx, command.AssignmentID())
	if err != nil {
		return nil, err
	}
	if !command.IsAdmin() && !current.BelongsTo(command.RiderID()) {
		return nil, fmt.Errorf("%w: assignment %s", ErrNotAssignmentOwner, current.ID())
	}

	o, err := orderRepo.GetForUpdate(ctx, current.OrderID())
	if err != nil {
		return nil, err
	}

	a, err := assignmentRepo.GetForUpdate(ctx, command.AssignmentID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	changed, err := a.Advance(command.Target(), command.Reason(), now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return a, nil
	}

	if err = h.applyToOrder(ctx, uow, a, o, now); err != nil {
		return nil, err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (h AdvanceAssignmentCommandHandler) applyToOrder(
	ctx context.Context,
	uow UoW,
	a *assignment.Assignment,
	o *order.Order,
	now time.Time,
) error {
	switch a.Status() {
	case assignment.Delivered:
		if err := o.TransitionTo(order.Delivered, now); err != nil {
			return err
		}
		if err := h.recordDelivery(ctx, uow, a, now); err != nil {
			return err
		}
	case assignment.Cancelled:
		if o.Status() != order.Delivering {
			return nil
		}
		if err := o.ReturnToPool(now); err != nil {
			return err
		}
	case assignment.Failed:
		if o.Status().IsTerminal() {
			return nil
		}
		if err := o.Cancel(a.Reason(), now); err != nil {
			return err
		}
	default:
		return nil
	}

	return uow.OrderRepository().Update(ctx, o)
}

func (h AdvanceAssignmentCommandHandler) recordDelivery(
	ctx context.Context,
	uow UoW,
	a *assignment.Assignment,
	now time.Time,
) error {
	riderRepo := uow.RiderRepository()

	r, err := riderRepo.GetForUpdate(ctx, a.RiderID())
	if err != nil {
		return err
	}

	r.RecordDelivery(now)
	return riderRepo.Update(ctx, r)
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/pkg/errs"
)

// TransitionOrderStatusCommandHandler drives the kitchen side of the order lifecycle
// (confirmed, preparing, ready) and cancellation.
//
// Delivering and delivered are refused: they belong to the assignment flow, which keeps
// assignment timestamps, rider counters and earnings in step with the order.
// Cancelling a delivering order also cancels its live assignment.
type TransitionOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewTransitionOrderStatusCommandHandler creates a handler for transition order status requests.
// Requires a UoWFactory for transactional persistence.
func NewTransitionOrderStatusCommandHandler(uowFactory UoWFactory) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order status command.
// The order is locked and transitioned. Cancelling also cancels the live
// assignment, if any, in the same transaction.
func (h TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command TransitionOrderStatusCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	target := command.Target()
	if target == order.Delivering || target == order.Delivered {
		return nil, fmt.Errorf("%w: %s is set by the assignment flow", order.ErrInvalidTransition, target)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if target == order.Cancelled {
		if o.Status() == order.Delivering {
			if err = h.cancelLiveAssignment(ctx, uow, o, command.Reason(), now); err != nil {
				return nil, err
			}
		}
		err = o.Cancel(command.Reason(), now)
	} else {
		err = o.TransitionTo(target, now)
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h TransitionOrderStatusCommandHandler) cancelLiveAssignment(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	reason string,
	now time.Time,
) error {
	assignmentRepo := uow.AssignmentRepository()

	a, err := assignmentRepo.GetActiveByOrder(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if reason == "" {
		reason = "order cancelled"
	}
	if _, err = a.Advance(assignment.Cancelled, reason, now); err != nil {
		return err
	}

	return assignmentRepo.Update(ctx, a)
}

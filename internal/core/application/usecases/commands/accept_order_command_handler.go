package commands

import (
	"context"

	"mealdispatch/internal/core/domain/model/assignment"
)

// AcceptOrderCommandHandler follows the same locking rules as AssignRiderCommandHandler
// and always charges the configured delivery fee. An approved, active rider who is
// offline gets an error matching rider.ErrRiderNotOnline.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	fees       FeeConfigurationProvider
}

// NewAcceptOrderCommandHandler creates a handler for accept order requests.
// Requires a UoWFactory for transactional persistence and a FeeConfigurationProvider
// for the current delivery fee.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory, fees FeeConfigurationProvider) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		fees:       fees,
	}
}

// Handle processes the accept command. The rider is assigned exactly as with
// AssignRiderCommand, charging the configured delivery fee.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) (*assignment.Assignment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return assignRider(ctx, h.uowFactory, command.OrderID(), command.RiderID(), h.fees.Get(ctx).DeliveryFee())
}

package commands

import (
	"errors"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand is an admin assignment of a specific rider to a ready order.
// When deliveryFee is nil the configured fee is used.
//
// Example:
//
//	override, _ := kernel.MoneyFromString("35.00")
//	cmd, err := NewAssignRiderCommand(orderID, riderID, &override)
//	a, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrAlreadyAssigned):
//	    // another rider won the order
//	case errors.Is(err, rider.ErrRiderIneligible):
//	    // offline, suspended or not approved
//	}
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	riderID     kernel.UUID
	deliveryFee *kernel.Money

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates a command to assign a rider to an order.
// A nil deliveryFee means the configured fee is charged.
// Returns an error if either identifier is empty or the fee is negative.
func NewAssignRiderCommand(orderID, riderID kernel.UUID, deliveryFee *kernel.Money) (AssignRiderCommand, error) {
	if err := errors.Join(orderID.Validate(), riderID.Validate()); err != nil {
		return AssignRiderCommand{}, err
	}

	cmd := AssignRiderCommand{
		orderID: orderID,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}
	if deliveryFee != nil {
		fee := *deliveryFee
		cmd.deliveryFee = &fee
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignRiderCommandIsNotConstructed if validation fails.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (c AssignRiderCommand) OrderID() kernel.UUID { return c.orderID }

// RiderID returns the identifier of the acting rider.
func (c AssignRiderCommand) RiderID() kernel.UUID { return c.riderID }

// DeliveryFee returns the admin override, if any.
func (c AssignRiderCommand) DeliveryFee() (kernel.Money, bool) {
	if c.deliveryFee == nil {
		return kernel.Money{}, false
	}
	return *c.deliveryFee, true
}

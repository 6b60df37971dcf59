package commands

import (
	"errors"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a rider claiming a ready order from the pool.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for a rider taking a ready order.
// Returns an error if either identifier is empty.
func NewAcceptOrderCommand(orderID, riderID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), riderID.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID: orderID,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptOrderCommandIsNotConstructed if validation fails.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (c AcceptOrderCommand) OrderID() kernel.UUID { return c.orderID }

// RiderID returns the identifier of the acting rider.
func (c AcceptOrderCommand) RiderID() kernel.UUID { return c.riderID }

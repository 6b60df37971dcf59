package commands

import (
	"errors"
	"strings"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand moves an order to the given status. The reason is only
// kept when the target is cancelled.
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	reason  string

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand creates a command to move an order to target.
// Validates the order id and target. Returns an error if any validation fails.
func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	reason string,
) (TransitionOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate()); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return TransitionOrderStatusCommand{
		orderID: orderID,
		target:  target,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderStatusCommandIsNotConstructed if validation fails.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (c TransitionOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Target returns the requested status.
func (c TransitionOrderStatusCommand) Target() order.Status { return c.target }

// Reason returns the optional reason for the transition.
func (c TransitionOrderStatusCommand) Reason() string { return c.reason }

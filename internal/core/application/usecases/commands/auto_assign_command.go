package commands

import (
	"errors"

	"mealdispatch/internal/pkg/guard"
)

var ErrAutoAssignCommandIsNotConstructed = errors.New(
	"AutoAssignCommand must be created via NewAutoAssignCommand constructor",
)

// AutoAssignCommand matches the oldest unassigned ready order with the longest idle
// eligible rider. It carries no parameters.
//
// Example:
//
//	err := handler.Handle(ctx, NewAutoAssignCommand())
//	switch {
//	case errors.Is(err, ErrNoOrderFound):
//	    // nothing waiting
//	case errors.Is(err, ErrNoEligibleRiders):
//	    // everyone is busy or offline
//	}
type AutoAssignCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoAssignCommand creates a command for one auto-assignment pass.
func NewAutoAssignCommand() AutoAssignCommand {
	return AutoAssignCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAutoAssignCommandIsNotConstructed if validation fails.
func (c *AutoAssignCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignCommandIsNotConstructed)
}

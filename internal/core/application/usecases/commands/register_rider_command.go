package commands

import (
	"errors"
	"strings"

	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"
)

var ErrRegisterRiderCommandIsNotConstructed = errors.New(
	"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
)

// RegisterRiderCommand signs up a rider. New riders wait for approval and start offline.
type RegisterRiderCommand struct { //nolint:recvcheck //using for validation
	name string

	guard guard.ConstructorGuard
}

// NewRegisterRiderCommand creates a command to register a rider.
// Returns an error if the name is empty.
func NewRegisterRiderCommand(name string) (RegisterRiderCommand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return RegisterRiderCommand{}, errs.NewValueIsRequiredError("name")
	}

	return RegisterRiderCommand{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterRiderCommandIsNotConstructed if validation fails.
func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}

// Name returns the requested name.
func (c RegisterRiderCommand) Name() string { return c.name }

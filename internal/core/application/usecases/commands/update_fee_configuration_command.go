package commands

import (
	"context"
	"errors"

	"mealdispatch/internal/core/domain/model/fee"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/guard"
)

var ErrUpdateFeeConfigurationCommandIsNotConstructed = errors.New(
	"UpdateFeeConfigurationCommand must be created via NewUpdateFeeConfigurationCommand constructor",
)

// UpdateFeeConfigurationCommand replaces all three fee settings at once.
type UpdateFeeConfigurationCommand struct { //nolint:recvcheck //using for validation
	configuration fee.Configuration

	guard guard.ConstructorGuard
}

// NewUpdateFeeConfigurationCommand creates a command that replaces the fee configuration.
func NewUpdateFeeConfigurationCommand(
	deliveryFee kernel.Money,
	commissionRate kernel.Percent,
	taxRate kernel.Percent,
) UpdateFeeConfigurationCommand {
	return UpdateFeeConfigurationCommand{
		configuration: fee.NewConfiguration(deliveryFee, commissionRate, taxRate),
		guard:         guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateFeeConfigurationCommandIsNotConstructed if validation fails.
func (c UpdateFeeConfigurationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateFeeConfigurationCommandIsNotConstructed)
}

// Configuration returns the fee settings to store.
func (c UpdateFeeConfigurationCommand) Configuration() fee.Configuration { return c.configuration }

// UpdateFeeConfigurationCommandHandler writes the settings and drops the cached copy,
// so the next read anywhere sees the new values.
type UpdateFeeConfigurationCommandHandler struct {
	store FeeConfigurationStore
}

// NewUpdateFeeConfigurationCommandHandler creates a handler for update fee configuration requests.
func NewUpdateFeeConfigurationCommandHandler(store FeeConfigurationStore) UpdateFeeConfigurationCommandHandler {
	return UpdateFeeConfigurationCommandHandler{store: store}
}

// Handle stores the new configuration.
func (h UpdateFeeConfigurationCommandHandler) Handle(ctx context.Context, command UpdateFeeConfigurationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.store.Update(ctx, command.Configuration())
}

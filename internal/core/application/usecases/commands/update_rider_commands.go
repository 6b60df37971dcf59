package commands

import (
	"errors"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/rider"
	"mealdispatch/internal/pkg/guard"
)

var (
	ErrSetRiderOnlineCommandIsNotConstructed = errors.New(
		"SetRiderOnlineCommand must be created via NewSetRiderOnlineCommand constructor",
	)
	ErrChangeRiderApprovalCommandIsNotConstructed = errors.New(
		"ChangeRiderApprovalCommand must be created via NewChangeRiderApprovalCommand constructor",
	)
	ErrSetRiderActiveCommandIsNotConstructed = errors.New(
		"SetRiderActiveCommand must be created via NewSetRiderActiveCommand constructor",
	)
)

// SetRiderOnlineCommand is sent by the rider app when the rider goes on or off shift.
type SetRiderOnlineCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	online  bool

	guard guard.ConstructorGuard
}

// NewSetRiderOnlineCommand creates a command toggling a rider's availability.
func NewSetRiderOnlineCommand(riderID kernel.UUID, online bool) (SetRiderOnlineCommand, error) {
	if err := riderID.Validate(); err != nil {
		return SetRiderOnlineCommand{}, err
	}

	return SetRiderOnlineCommand{riderID: riderID, online: online, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetRiderOnlineCommandIsNotConstructed if validation fails.
func (c SetRiderOnlineCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderOnlineCommandIsNotConstructed)
}

// RiderID returns the identifier of the acting rider.
func (c SetRiderOnlineCommand) RiderID() kernel.UUID { return c.riderID }

// Online returns the requested availability.
func (c SetRiderOnlineCommand) Online() bool { return c.online }

// ChangeRiderApprovalCommand records an admin review of a rider.
type ChangeRiderApprovalCommand struct { //nolint:recvcheck //using for validation
	riderID  kernel.UUID
	approval rider.Approval

	guard guard.ConstructorGuard
}

// NewChangeRiderApprovalCommand creates a command setting a rider's approval state.
// Returns an error if the rider id or approval is invalid.
func NewChangeRiderApprovalCommand(riderID kernel.UUID, approval rider.Approval) (ChangeRiderApprovalCommand, error) {
	if err := errors.Join(riderID.Validate(), approval.Validate()); err != nil {
		return ChangeRiderApprovalCommand{}, err
	}

	return ChangeRiderApprovalCommand{riderID: riderID, approval: approval, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeRiderApprovalCommandIsNotConstructed if validation fails.
func (c ChangeRiderApprovalCommand) Validate() error {
	return c.guard.Validate(ErrChangeRiderApprovalCommandIsNotConstructed)
}

// RiderID returns the identifier of the acting rider.
func (c ChangeRiderApprovalCommand) RiderID() kernel.UUID { return c.riderID }

// Approval returns the approval state to apply.
func (c ChangeRiderApprovalCommand) Approval() rider.Approval { return c.approval }

// SetRiderActiveCommand enables or disables a rider account.
type SetRiderActiveCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	active  bool

	guard guard.ConstructorGuard
}

// NewSetRiderActiveCommand creates a command enabling or disabling a rider account.
func NewSetRiderActiveCommand(riderID kernel.UUID, active bool) (SetRiderActiveCommand, error) {
	if err := riderID.Validate(); err != nil {
		return SetRiderActiveCommand{}, err
	}

	return SetRiderActiveCommand{riderID: riderID, active: active, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetRiderActiveCommandIsNotConstructed if validation fails.
func (c SetRiderActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderActiveCommandIsNotConstructed)
}

// RiderID returns the identifier of the acting rider.
func (c SetRiderActiveCommand) RiderID() kernel.UUID { return c.riderID }

// Active returns the requested account state.
func (c SetRiderActiveCommand) Active() bool { return c.active }

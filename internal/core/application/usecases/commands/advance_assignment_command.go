package commands

import (
	"errors"
	"strings"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/guard"
)

var ErrAdvanceAssignmentCommandIsNotConstructed = errors.New(
	"AdvanceAssignmentCommand must be created via NewAdvanceAssignmentCommand or NewAdminCancelAssignmentCommand",
)

// AdvanceAssignmentCommand moves an assignment along its state machine on behalf of the
// rider who owns it, or on behalf of an admin (cancellation only).
type AdvanceAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	riderID      kernel.UUID
	target       assignment.Status
	reason       string
	admin        bool

	guard guard.ConstructorGuard
}

// NewAdvanceAssignmentCommand creates a command moving an assignment to target on behalf of a rider.
// Validates the identifiers and the target status. Returns an error if any validation fails.
func NewAdvanceAssignmentCommand(
	assignmentID kernel.UUID,
	riderID kernel.UUID,
	target assignment.Status,
	reason string,
) (AdvanceAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), riderID.Validate(), target.Validate()); err != nil {
		return AdvanceAssignmentCommand{}, err
	}

	return AdvanceAssignmentCommand{
		assignmentID: assignmentID,
		riderID:      riderID,
		target:       target,
		reason:       strings.TrimSpace(reason),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// NewAdminCancelAssignmentCommand cancels an assignment without an ownership check.
func NewAdminCancelAssignmentCommand(assignmentID kernel.UUID, reason string) (AdvanceAssignmentCommand, error) {
	if err := assignmentID.Validate(); err != nil {
		return AdvanceAssignmentCommand{}, err
	}

	return AdvanceAssignmentCommand{
		assignmentID: assignmentID,
		target:       assignment.Cancelled,
		reason:       strings.TrimSpace(reason),
		admin:        true,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceAssignmentCommandIsNotConstructed if validation fails.
func (c AdvanceAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the identifier of the target assignment.
func (c AdvanceAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// RiderID returns the identifier of the acting rider.
func (c AdvanceAssignmentCommand) RiderID() kernel.UUID { return c.riderID }

// Target returns the requested status.
func (c AdvanceAssignmentCommand) Target() assignment.Status { return c.target }

// Reason returns the optional reason for the transition.
func (c AdvanceAssignmentCommand) Reason() string { return c.reason }

// IsAdmin reports whether the request bypasses the rider ownership check.
func (c AdvanceAssignmentCommand) IsAdmin() bool { return c.admin }

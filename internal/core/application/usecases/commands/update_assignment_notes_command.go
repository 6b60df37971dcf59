package commands

import (
	"errors"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/guard"
)

var ErrUpdateAssignmentNotesCommandIsNotConstructed = errors.New(
	"UpdateAssignmentNotesCommand must be created via NewUpdateAssignmentNotesCommand constructor",
)

type UpdateAssignmentNotesCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	notes        string

	guard guard.ConstructorGuard
}

// NewUpdateAssignmentNotesCommand creates a command that replaces an assignment's notes.
func NewUpdateAssignmentNotesCommand(assignmentID kernel.UUID, notes string) (UpdateAssignmentNotesCommand, error) {
	if err := assignmentID.Validate(); err != nil {
		return UpdateAssignmentNotesCommand{}, err
	}

	return UpdateAssignmentNotesCommand{
		assignmentID: assignmentID,
		notes:        notes,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateAssignmentNotesCommandIsNotConstructed if validation fails.
func (c UpdateAssignmentNotesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAssignmentNotesCommandIsNotConstructed)
}

// AssignmentID returns the identifier of the target assignment.
func (c UpdateAssignmentNotesCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// Notes returns the replacement notes.
func (c UpdateAssignmentNotesCommand) Notes() string { return c.notes }

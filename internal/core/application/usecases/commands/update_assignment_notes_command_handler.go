package commands

import (
	"context"
	"time"

	"mealdispatch/internal/core/domain/model/assignment"
)

// UpdateAssignmentNotesCommandHandler replaces the free-text notes, in any status.
type UpdateAssignmentNotesCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewUpdateAssignmentNotesCommandHandler creates a handler for update assignment notes requests.
// Requires an AssignmentUoWFactory for transactional persistence.
func NewUpdateAssignmentNotesCommandHandler(uowFactory AssignmentUoWFactory) UpdateAssignmentNotesCommandHandler {
	return UpdateAssignmentNotesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the notes command under a row lock on the assignment.
func (h UpdateAssignmentNotesCommandHandler) Handle(
	ctx context.Context,
	command UpdateAssignmentNotesCommand,
) (*assignment.Assignment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AssignmentRepository()

	a, err := repo.GetForUpdate(ctx, command.AssignmentID())
	if err != nil {
		return nil, err
	}

	a.UpdateNotes(command.Notes(), time.Now().UTC())

	if err = repo.Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

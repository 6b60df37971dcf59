package commands

import (
	"context"
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/rider"
)

// SetRiderOnlineCommandHandler rejects riders that are not approved (rider.ErrNotApproved)
// or not active (rider.ErrSuspended).
type SetRiderOnlineCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewSetRiderOnlineCommandHandler creates a handler for set rider online requests.
// Requires a RiderUoWFactory for transactional persistence.
func NewSetRiderOnlineCommandHandler(uowFactory RiderUoWFactory) SetRiderOnlineCommandHandler {
	return SetRiderOnlineCommandHandler{uowFactory: uowFactory}
}

// Handle processes the availability command.
func (h SetRiderOnlineCommandHandler) Handle(ctx context.Context, command SetRiderOnlineCommand) (*rider.Rider, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return updateRider(ctx, h.uowFactory, command.RiderID(), func(r *rider.Rider, now time.Time) error {
		return r.SetOnline(command.Online(), now)
	})
}

// ChangeRiderApprovalCommandHandler takes the rider offline when approval is withdrawn.
type ChangeRiderApprovalCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewChangeRiderApprovalCommandHandler creates a handler for change rider approval requests.
// Requires a RiderUoWFactory for transactional persistence.
func NewChangeRiderApprovalCommandHandler(uowFactory RiderUoWFactory) ChangeRiderApprovalCommandHandler {
	return ChangeRiderApprovalCommandHandler{uowFactory: uowFactory}
}

// Handle processes the approval command.
func (h ChangeRiderApprovalCommandHandler) Handle(
	ctx context.Context,
	command ChangeRiderApprovalCommand,
) (*rider.Rider, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return updateRider(ctx, h.uowFactory, command.RiderID(), func(r *rider.Rider, now time.Time) error {
		return r.ChangeApproval(command.Approval(), now)
	})
}

type SetRiderActiveCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewSetRiderActiveCommandHandler creates a handler for set rider active requests.
// Requires a RiderUoWFactory for transactional persistence.
func NewSetRiderActiveCommandHandler(uowFactory RiderUoWFactory) SetRiderActiveCommandHandler {
	return SetRiderActiveCommandHandler{uowFactory: uowFactory}
}

// Handle processes the account state command.
func (h SetRiderActiveCommandHandler) Handle(ctx context.Context, command SetRiderActiveCommand) (*rider.Rider, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return updateRider(ctx, h.uowFactory, command.RiderID(), func(r *rider.Rider, now time.Time) error {
		r.SetActive(command.Active(), now)
		return nil
	})
}

func updateRider(
	ctx context.Context,
	uowFactory RiderUoWFactory,
	riderID kernel.UUID,
	apply func(r *rider.Rider, now time.Time) error,
) (*rider.Rider, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RiderRepository()

	r, err := repo.GetForUpdate(ctx, riderID)
	if err != nil {
		return nil, err
	}

	if err = apply(r, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

package commands_test

import (
	"testing"

	"mealdispatch/internal/core/application/usecases/commands"
	"mealdispatch/internal/core/domain/events"
	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func advanceCommand(t *testing.T, a *assignment.Assignment, riderID kernel.UUID, target assignment.Status) commands.AdvanceAssignmentCommand {
	t.Helper()
	cmd, err := commands.NewAdvanceAssignmentCommand(a.ID(), riderID, target, "")
	require.NoError(t, err)
	return cmd
}

func TestAdvanceAssignmentCommandHandler_Handle_Delivered(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	o := orderInStatus(t, order.Delivering)
	r := eligibleRider(t)
	a := assignmentInStatus(t, o.ID(), r.ID(), assignment.Delivering)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.assignments.On("Get", ctx, a.ID()).Return(a, nil).Once(),
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once(),
		f.riders.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		f.riders.On("Update", ctx, r).Return(nil).Once(),
		f.orders.On("Update", ctx, o).Return(nil).Once(),
		f.assignments.On("Update", ctx, a).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	got, err := commands.NewAdvanceAssignmentCommandHandler(f.factory).
		Handle(ctx, advanceCommand(t, a, r.ID(), assignment.Delivered))

	require.NoError(t, err)
	assert.Equal(t, assignment.Delivered, got.Status())
	assert.NotNil(t, got.DeliveredAt())
	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, 1, r.TotalDeliveries())

	require.Len(t, o.DomainEvents(), 1)
	_, ok := o.DomainEvents()[0].(events.OrderDelivered)
	assert.True(t, ok)

	f.uow.AssertExpectations(t)
	f.riders.AssertExpectations(t)
}

func TestAdvanceAssignmentCommandHandler_Handle_DeliveredTwiceIsNoop(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	o := orderInStatus(t, order.Delivered)
	r := eligibleRider(t)
	a := assignmentInStatus(t, o.ID(), r.ID(), assignment.Delivered)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.assignments.On("Get", ctx, a.ID()).Return(a, nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()

	got, err := commands.NewAdvanceAssignmentCommandHandler(f.factory).
		Handle(ctx, advanceCommand(t, a, r.ID(), assignment.Delivered))

	require.NoError(t, err)
	assert.Equal(t, assignment.Delivered, got.Status())
	assert.Equal(t, 0, r.TotalDeliveries())
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.riders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdvanceAssignmentCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	o := orderInStatus(t, order.Delivering)
	a := assignmentInStatus(t, o.ID(), kernel.NewUUID(), assignment.Assigned)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.assignments.On("Get", ctx, a.ID()).Return(a, nil).Once()

	_, err := commands.NewAdvanceAssignmentCommandHandler(f.factory).
		Handle(ctx, advanceCommand(t, a, kernel.NewUUID(), assignment.PickedUp))

	require.ErrorIs(t, err, commands.ErrNotAssignmentOwner)
	assert.Equal(t, assignment.Assigned, a.Status())
	f.orders.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
}

func TestAdvanceAssignmentCommandHandler_Handle_UnknownAssignment(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	id := kernel.NewUUID()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.assignments.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("assignment", id.String())).Once()

	cmd, err := commands.NewAdvanceAssignmentCommand(id, kernel.NewUUID(), assignment.PickedUp, "")
	require.NoError(t, err)

	_, err = commands.NewAdvanceAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAdvanceAssignmentCommandHandler_Handle_PickedUpLeavesOrder(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	o := orderInStatus(t, order.Delivering)
	r := eligibleRider(t)
	a := assignmentInStatus(t, o.ID(), r.ID(), assignment.Assigned)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.assignments.On("Get", ctx, a.ID()).Return(a, nil).Once()
	f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
	f.assignments.On("Update", ctx, a).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	got, err := commands.NewAdvanceAssignmentCommandHandler(f.factory).
		Handle(ctx, advanceCommand(t, a, r.ID(), assignment.PickedUp))

	require.NoError(t, err)
	assert.NotNil(t, got.PickedUpAt())
	assert.Equal(t, order.Delivering, o.Status())
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdvanceAssignmentCommandHandler_Handle_CancelledReturnsOrderToPool(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	o := orderInStatus(t, order.Delivering)
	r := eligibleRider(t)
	a := assignmentInStatus(t, o.ID(), r.ID(), assignment.PickedUp)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.assignments.On("Get", ctx, a.ID()).Return(a, nil).Once()
	f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
	f.assignments.On("Update", ctx, a).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()

	cmd, err := commands.NewAdvanceAssignmentCommand(a.ID(), r.ID(), assignment.Cancelled, "bike broke down")
	require.NoError(t, err)

	got, err := commands.NewAdvanceAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, assignment.Cancelled, got.Status())
	assert.Equal(t, "bike broke down", got.Reason())
	assert.Equal(t, order.Ready, o.Status())

	require.Len(t, o.DomainEvents(), 1)
	_, ok := o.DomainEvents()[0].(events.OrderReady)
	assert.True(t, ok)
}

func TestAdvanceAssignmentCommandHandler_Handle_FailedCancelsOrder(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	o := orderInStatus(t, order.Delivering)
	r := eligibleRider(t)
	a := assignmentInStatus(t, o.ID(), r.ID(), assignment.Delivering)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.assignments.On("Get", ctx, a.ID()).Return(a, nil).Once()
	f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
	f.assignments.On("Update", ctx, a).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()

	cmd, err := commands.NewAdvanceAssignmentCommand(a.ID(), r.ID(), assignment.Failed, "customer unreachable")
	require.NoError(t, err)

	_, err = commands.NewAdvanceAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, "customer unreachable", o.CancellationReason())
}

func TestAdvanceAssignmentCommandHandler_Handle_AdminCancelSkipsOwnerCheck(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	o := orderInStatus(t, order.Delivering)
	a := assignmentInStatus(t, o.ID(), kernel.NewUUID(), assignment.Assigned)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.assignments.On("Get", ctx, a.ID()).Return(a, nil).Once()
	f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
	f.assignments.On("Update", ctx, a).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()

	cmd, err := commands.NewAdminCancelAssignmentCommand(a.ID(), "rider reported sick")
	require.NoError(t, err)

	got, err := commands.NewAdvanceAssignmentCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, assignment.Cancelled, got.Status())
	assert.Equal(t, order.Ready, o.Status())
}

func TestAdvanceAssignmentCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	o := orderInStatus(t, order.Delivering)
	r := eligibleRider(t)
	a := assignmentInStatus(t, o.ID(), r.ID(), assignment.Assigned)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.assignments.On("Get", ctx, a.ID()).Return(a, nil).Once()
	f.assignments.On("GetForUpdate", ctx, a.ID()).Return(a, nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	_, err := commands.NewAdvanceAssignmentCommandHandler(f.factory).
		Handle(ctx, advanceCommand(t, a, r.ID(), assignment.Delivered))

	require.ErrorIs(t, err, assignment.ErrInvalidTransition)
	assert.Equal(t, order.Delivering, o.Status())
}

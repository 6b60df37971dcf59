package assignment_test

import (
	"testing"
	"time"

	"mealdispatch/internal/core/domain/events"
	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssignment(t *testing.T) *assignment.Assignment {
	t.Helper()
	fee, err := kernel.MoneyFromString("50")
	require.NoError(t, err)
	a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), fee, time.Now())
	require.NoError(t, err)
	return a
}

func TestNewAssignment(t *testing.T) {
	a := newAssignment(t)

	assert.Equal(t, assignment.Assigned, a.Status())
	assert.True(t, a.IsActive())
	assert.Equal(t, "50.00", a.DeliveryFee().String())
	require.Len(t, a.DomainEvents(), 1)
	created, ok := a.DomainEvents()[0].(events.AssignmentCreated)
	require.True(t, ok)
	assert.True(t, created.AssignmentID.IsEqual(a.ID()))
	assert.True(t, created.RiderID.IsEqual(a.RiderID()))

	_, err := assignment.NewAssignment(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), kernel.ZeroMoney(), time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAssignment_Advance_HappyPath(t *testing.T) {
	a := newAssignment(t)

	changed, err := a.Advance(assignment.PickedUp, "", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotNil(t, a.PickedUpAt())

	_, err = a.Advance(assignment.Delivering, "", time.Now())
	require.NoError(t, err)

	changed, err = a.Advance(assignment.Delivered, "", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotNil(t, a.DeliveredAt())
	assert.False(t, a.IsActive())
}

func TestAssignment_Advance_SameStatusIsNoop(t *testing.T) {
	a := newAssignment(t)
	for _, s := range []assignment.Status{assignment.PickedUp, assignment.Delivering, assignment.Delivered} {
		_, err := a.Advance(s, "", time.Now())
		require.NoError(t, err)
	}
	deliveredAt := a.DeliveredAt()

	changed, err := a.Advance(assignment.Delivered, "", time.Now().Add(time.Hour))

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, deliveredAt, a.DeliveredAt())
}

func TestAssignment_Advance_Cancel(t *testing.T) {
	a := newAssignment(t)

	changed, err := a.Advance(assignment.Cancelled, "  rider had a flat tyre ", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "rider had a flat tyre", a.Reason())

	changed, err = a.Advance(assignment.Cancelled, "twice", time.Now())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "rider had a flat tyre", a.Reason())
}

func TestAssignment_Advance_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		path   []assignment.Status
		target assignment.Status
	}{
		{"skip pickup", nil, assignment.Delivered},
		{"backwards", []assignment.Status{assignment.PickedUp}, assignment.Assigned},
		{"after delivered", []assignment.Status{assignment.PickedUp, assignment.Delivering, assignment.Delivered}, assignment.Cancelled},
		{"after failed", []assignment.Status{assignment.Failed}, assignment.PickedUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAssignment(t)
			for _, s := range tt.path {
				_, err := a.Advance(s, "", time.Now())
				require.NoError(t, err)
			}

			_, err := a.Advance(tt.target, "", time.Now())

			require.ErrorIs(t, err, assignment.ErrInvalidTransition)
			require.ErrorIs(t, err, errs.ErrConflict)
		})
	}
}

func TestAssignment_NotesAfterTerminal(t *testing.T) {
	a := newAssignment(t)
	_, err := a.Advance(assignment.Failed, "customer unreachable", time.Now())
	require.NoError(t, err)

	a.UpdateNotes("left at reception", time.Now())

	assert.Equal(t, "left at reception", a.Notes())
	assert.Equal(t, assignment.Failed, a.Status())
}

func TestParseStatus(t *testing.T) {
	s, err := assignment.ParseStatus("picked_up")
	require.NoError(t, err)
	assert.Equal(t, assignment.PickedUp, s)

	_, err = assignment.ParseStatus("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

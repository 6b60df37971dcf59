package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"mealdispatch/internal/core/application/usecases/commands"
	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAutoAssigner struct {
	mock.Mock
}

func (m *MockAutoAssigner) Handle(ctx context.Context, command commands.AutoAssignCommand) (*assignment.Assignment, error) {
	args := m.Called(ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

type stubJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j stubJob) Start() error {
	*j.log = append(*j.log, "start "+j.name)
	return j.startErr
}

func (j stubJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAssignment(t *testing.T) *assignment.Assignment {
	t.Helper()
	fee, err := kernel.MoneyFromString("50")
	require.NoError(t, err)
	a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), fee, time.Now())
	require.NoError(t, err)
	return a
}

func TestAutoAssignJob_RunDrainsPool(t *testing.T) {
	handler := &MockAutoAssigner{}
	mock.InOrder(
		handler.On("Handle", mock.Anything, mock.Anything).Return(newAssignment(t), nil).Twice(),
		handler.On("Handle", mock.Anything, mock.Anything).Return(nil, commands.ErrNoOrderFound).Once(),
	)

	job := NewAutoAssignJob(handler, "", discardLogger())

	assert.Equal(t, 2, job.run(context.Background()))
	handler.AssertExpectations(t)
}

func TestAutoAssignJob_RunStopsOnErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"no riders", commands.ErrNoEligibleRiders},
		{"lost race", commands.ErrAlreadyAssigned},
		{"database down", errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &MockAutoAssigner{}
			handler.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			job := NewAutoAssignJob(handler, "", discardLogger())

			assert.Zero(t, job.run(context.Background()))
			handler.AssertExpectations(t)
		})
	}
}

func TestAutoAssignJob_RunIsBounded(t *testing.T) {
	handler := &MockAutoAssigner{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(newAssignment(t), nil)

	job := NewAutoAssignJob(handler, "", discardLogger())

	assert.Equal(t, maxAssignmentsPerRun, job.run(context.Background()))
	handler.AssertNumberOfCalls(t, "Handle", maxAssignmentsPerRun)
}

func TestAutoAssignJob_Start(t *testing.T) {
	t.Run("default schedule", func(t *testing.T) {
		job := NewAutoAssignJob(&MockAutoAssigner{}, "", discardLogger())

		require.NoError(t, job.Start())
		job.Stop()
		assert.Equal(t, DefaultAutoAssignSchedule, job.schedule)
	})

	t.Run("malformed schedule", func(t *testing.T) {
		job := NewAutoAssignJob(&MockAutoAssigner{}, "every now and then", discardLogger())

		assert.Error(t, job.Start())
	})
}

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var log []string
		jm := NewJobManager(discardLogger(), stubJob{name: "a", log: &log}, stubJob{name: "b", log: &log})

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("failed start stops running jobs", func(t *testing.T) {
		var log []string
		jm := NewJobManager(discardLogger(),
			stubJob{name: "a", log: &log},
			stubJob{name: "b", log: &log, startErr: errors.New("bad schedule")},
		)

		err := jm.StartAll()

		require.Error(t, err)
		assert.Equal(t, []string{"start a", "start b", "stop a"}, log)
	})

	t.Run("no jobs", func(t *testing.T) {
		jm := NewJobManager(discardLogger())

		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})
}

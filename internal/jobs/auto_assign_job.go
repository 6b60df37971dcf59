package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mealdispatch/internal/core/application/usecases/commands"
	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultAutoAssignSchedule runs the job every ten seconds.
	DefaultAutoAssignSchedule = "*/10 * * * * *"

	maxAssignmentsPerRun = 20
	runTimeout           = 30 * time.Second
)

type AutoAssigner interface {
	Handle(ctx context.Context, command commands.AutoAssignCommand) (*assignment.Assignment, error)
}

// AutoAssignJob matches ready orders with idle riders on a cron schedule.
// Each tick keeps assigning until the pool or the riders run out.
type AutoAssignJob struct {
	handler  AutoAssigner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutoAssignJob creates a job running handler on the cron schedule.
// The schedule uses the six-field format with seconds.
func NewAutoAssignJob(handler AutoAssigner, schedule string, logger *slog.Logger) *AutoAssignJob {
	if schedule == "" {
		schedule = DefaultAutoAssignSchedule
	}

	return &AutoAssignJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "auto_assign_job"),
	}
}

// Start registers the tick and starts the scheduler. A malformed schedule is returned as is.
func (j *AutoAssignJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		j.run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-assign job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running tick to finish.
func (j *AutoAssignJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Auto-assign job stopped")
}

// run returns the number of assignments created.
func (j *AutoAssignJob) run(ctx context.Context) int {
	assigned := 0

	for assigned < maxAssignmentsPerRun {
		a, err := j.handler.Handle(ctx, commands.NewAutoAssignCommand())
		if err != nil {
			// Expected outcomes of an idle tick, or a rider/admin winning the race.
			if !errors.Is(err, commands.ErrNoOrderFound) &&
				!errors.Is(err, commands.ErrNoEligibleRiders) &&
				!errors.Is(err, commands.ErrAlreadyAssigned) {
				j.logger.ErrorContext(ctx, "Auto-assign job failed", "error", err)
			}
			break
		}

		assigned++
		metrics.AssignmentsCreated.WithLabelValues("auto").Inc()
		j.logger.InfoContext(ctx, "Order auto-assigned",
			"order_id", a.OrderID().String(),
			"rider_id", a.RiderID().String(),
			"assignment_id", a.ID().String())
	}

	return assigned
}

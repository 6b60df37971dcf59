// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based (github.com/robfig/cron/v3 with a seconds field).
//
// # Available Jobs
//
// AutoAssignJob matches the oldest ready order without a live assignment with the
// longest idle eligible rider. It is disabled unless AUTO_ASSIGN_ENABLED is set; the
// schedule comes from AUTO_ASSIGN_SCHEDULE and defaults to every ten seconds.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(logger,
//		jobs.NewAutoAssignJob(autoAssignHandler, "*/10 * * * * *", logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An empty pool, no eligible riders and losing the assignment race end the tick quietly.
// Anything else is logged at error level and retried on the next tick.
package jobs

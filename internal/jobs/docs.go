// Package jobs provides scheduled background tasks for the development backend.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to move the fake world forward while a partner works against it.
//
// # Available Jobs
//
// 1. OrderProgressionJob - Marks received orders as packed once they are old enough
// 2. OTPSweepJob - Drops expired one-time codes from the in-memory code store
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager; pass a nil sweeper when codes live in Redis
//	jobManager := jobs.NewJobManager(orderService, schedule, time.Minute, memoryCodes, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six-field cron expressions with a leading seconds field.
// The progression schedule comes from PROGRESSION_SCHEDULE and defaults to
// every 30 seconds; the sweep runs at the top of every minute.
//
// # Error Handling
//
// - Progression failures are logged and retried on the next tick
// - A bad progression schedule fails StartAll
// - Failed job starts will stop any already running jobs
package jobs

package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates the development backend's scheduled jobs.
type JobManager struct {
	orderProgressionJob *OrderProgressionJob
	otpSweepJob         *OTPSweepJob
}

// NewJobManager wires the jobs. sweeper may be nil when codes live in a
// store that expires them itself.
func NewJobManager(
	promoter OrderPromoter,
	progressionSchedule string,
	progressionMinAge time.Duration,
	sweeper CodeSweeper,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{
		orderProgressionJob: NewOrderProgressionJob(promoter, progressionSchedule, progressionMinAge, logger),
	}
	if sweeper != nil {
		jm.otpSweepJob = NewOTPSweepJob(sweeper, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderProgressionJob.Start(); err != nil {
		return fmt.Errorf("failed to start order progression job: %w", err)
	}

	if jm.otpSweepJob != nil {
		if err := jm.otpSweepJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.orderProgressionJob.Stop()
			return fmt.Errorf("failed to start OTP sweep job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	if jm.otpSweepJob != nil {
		jm.otpSweepJob.Stop()
	}
	jm.orderProgressionJob.Stop()
}

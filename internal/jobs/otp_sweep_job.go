package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// CodeSweeper drops expired one-time codes.
type CodeSweeper interface {
	Sweep(now time.Time) int
}

// OTPSweepJob clears expired codes from the in-memory store once a minute.
// The Redis store expires codes itself and needs no sweeping.
type OTPSweepJob struct {
	sweeper CodeSweeper
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOTPSweepJob(sweeper CodeSweeper, logger *slog.Logger) *OTPSweepJob {
	return &OTPSweepJob{
		sweeper: sweeper,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "otp_sweep_job"),
	}
}

func (j *OTPSweepJob) Start() error {
	if _, err := j.cron.AddFunc("0 * * * * *", j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "OTP sweep job started (running every minute)")
	return nil
}

func (j *OTPSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "OTP sweep job stopped")
}

func (j *OTPSweepJob) run() {
	if removed := j.sweeper.Sweep(time.Now()); removed > 0 {
		j.logger.DebugContext(context.Background(), "Expired codes removed", "count", removed)
	}
}

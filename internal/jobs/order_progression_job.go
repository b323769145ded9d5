package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultProgressionSchedule runs the progression every 30 seconds.
const DefaultProgressionSchedule = "*/30 * * * * *"

// OrderPromoter moves received orders on to packed.
type OrderPromoter interface {
	PromoteReceived(ctx context.Context, minAge time.Duration) (int64, error)
}

// OrderProgressionJob stands in for the warehouse: received orders older
// than minAge are marked packed, so partners see new work appear.
type OrderProgressionJob struct {
	promoter OrderPromoter
	schedule string
	minAge   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderProgressionJob takes a six-field cron schedule (seconds first).
// An empty schedule uses DefaultProgressionSchedule.
func NewOrderProgressionJob(promoter OrderPromoter, schedule string, minAge time.Duration, logger *slog.Logger) *OrderProgressionJob {
	if schedule == "" {
		schedule = DefaultProgressionSchedule
	}
	return &OrderProgressionJob{
		promoter: promoter,
		schedule: schedule,
		minAge:   minAge,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_progression_job"),
	}
}

func (j *OrderProgressionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order progression job started", "schedule", j.schedule)
	return nil
}

func (j *OrderProgressionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order progression job stopped")
}

func (j *OrderProgressionJob) run() {
	ctx := context.Background()

	moved, err := j.promoter.PromoteReceived(ctx, j.minAge)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order progression job failed", "error", err)
		return
	}
	if moved > 0 {
		j.logger.InfoContext(ctx, "Orders packed", "count", moved)
	}
}

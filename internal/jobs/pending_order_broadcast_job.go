package jobs

import (
	"context"
	"log/slog"
	"time"

	"meatdelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	pendingOrderBroadcastJobName = "pending_order_broadcast"

	DefaultBroadcastSchedule   = "*/30 * * * * *"
	DefaultBroadcastStaleAfter = time.Minute
	DefaultBroadcastLimit      = 50
)

type pendingOrderRebroadcaster interface {
	Handle(ctx context.Context, cmd commands.RebroadcastPendingOrdersCommand) (int, error)
}

// PendingOrderBroadcastConfig controls how often and which pending orders are
// announced again. Zero values fall back to the defaults.
type PendingOrderBroadcastConfig struct {
	Schedule   string
	StaleAfter time.Duration
	Limit      int
}

// PendingOrderBroadcastJob periodically re-publishes new-order events for orders
// still waiting for a delivery partner.
type PendingOrderBroadcastJob struct {
	handler  pendingOrderRebroadcaster
	schedule string
	cmd      commands.RebroadcastPendingOrdersCommand
	cron     *cron.Cron
	metrics  *Metrics
	logger   *slog.Logger
}

func NewPendingOrderBroadcastJob(
	handler pendingOrderRebroadcaster,
	config PendingOrderBroadcastConfig,
	metrics *Metrics,
	logger *slog.Logger,
) (*PendingOrderBroadcastJob, error) {
	if config.Schedule == "" {
		config.Schedule = DefaultBroadcastSchedule
	}
	if config.StaleAfter == 0 {
		config.StaleAfter = DefaultBroadcastStaleAfter
	}
	if config.Limit == 0 {
		config.Limit = DefaultBroadcastLimit
	}

	cmd, err := commands.NewRebroadcastPendingOrdersCommand(config.StaleAfter, config.Limit)
	if err != nil {
		return nil, err
	}

	return &PendingOrderBroadcastJob{
		handler:  handler,
		schedule: config.Schedule,
		cmd:      cmd,
		cron:     cron.New(cron.WithSeconds()),
		metrics:  metrics,
		logger:   logger.With("component", "pending_order_broadcast_job"),
	}, nil
}

func (j *PendingOrderBroadcastJob) Name() string {
	return pendingOrderBroadcastJobName
}

// Run performs one broadcast round.
func (j *PendingOrderBroadcastJob) Run(ctx context.Context) error {
	started := time.Now()
	published, err := j.handler.Handle(ctx, j.cmd)
	j.metrics.observe(pendingOrderBroadcastJobName, started, published, err)
	if err != nil {
		return err
	}

	if published > 0 {
		j.logger.InfoContext(ctx, "Re-broadcast pending orders", "count", published)
	}
	return nil
}

// Start schedules Run. Overlapping runs are skipped.
func (j *PendingOrderBroadcastJob) Start() error {
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Pending order broadcast failed", "error", err)
		}
	}))

	if _, err := j.cron.AddJob(j.schedule, job); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order broadcast job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running broadcast to finish.
func (j *PendingOrderBroadcastJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending order broadcast job stopped")
}

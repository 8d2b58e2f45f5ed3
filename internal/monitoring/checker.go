package monitoring

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Checker refreshes pool statistics in the background.
type Checker struct {
	collector *Collector
	interval  time.Duration
}

// NewChecker creates a background pool checker.
func NewChecker(collector *Collector, interval time.Duration) *Checker {
	return &Checker{
		collector: collector,
		interval:  interval,
	}
}

// Run starts the periodic check loop. It blocks until ctx is cancelled.
func (c *Checker) Run(ctx context.Context) {
	interval := c.interval
	if interval <= 0 {
		interval = time.Minute
	}

	log := zap.L().With(zap.String("component", "monitoring.checker"))
	log.Info("starting pool checker", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.check(ctx, log)
	for {
		select {
		case <-ctx.Done():
			log.Info("pool checker stopped")
			return
		case <-ticker.C:
			c.check(ctx, log)
		}
	}
}

func (c *Checker) check(ctx context.Context, log *zap.Logger) {
	snap, err := c.collector.Collect(ctx)
	if err != nil {
		log.Error("monitoring: failed to collect pool stats", zap.Error(err))
		return
	}
	log.Debug("pool stats",
		zap.Int("total", snap.Total),
		zap.Float64("avg_confidence", snap.AvgConfidence),
		zap.Float64("budget_sum", snap.BudgetSum),
	)
}

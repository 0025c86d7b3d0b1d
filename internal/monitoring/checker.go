package monitoring

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/painpoint-cli/internal/config"
)

const defaultCheckInterval = 5 * time.Minute

// Checker evaluates run health on a fixed interval while the API server
// is up.
type Checker struct {
	collector *Collector
	alerter   *Alerter
	lookback  int
	interval  time.Duration
	log       *zap.Logger
}

// NewChecker builds a Checker from the monitoring config.
func NewChecker(collector *Collector, alerter *Alerter, cfg config.MonitoringConfig) *Checker {
	interval := time.Duration(cfg.CheckIntervalSecs) * time.Second
	if interval <= 0 {
		interval = defaultCheckInterval
	}
	return &Checker{
		collector: collector,
		alerter:   alerter,
		lookback:  cfg.LookbackWindowHours,
		interval:  interval,
		log:       zap.L().With(zap.String("component", "monitoring.checker")),
	}
}

// Run checks once immediately and then on every tick until ctx is done.
func (c *Checker) Run(ctx context.Context) {
	c.log.Info("run health checker started",
		zap.Duration("interval", c.interval),
		zap.Int("lookback_hours", c.lookback),
	)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		c.Check(ctx)
		select {
		case <-ctx.Done():
			c.log.Info("run health checker stopped")
			return
		case <-ticker.C:
		}
	}
}

// Check collects a snapshot, sends any triggered alerts, and returns how
// many alerts fired.
func (c *Checker) Check(ctx context.Context) int {
	snap, err := c.collector.Collect(ctx, c.lookback)
	if err != nil {
		if ctx.Err() == nil {
			c.log.Error("monitoring: collect run snapshot", zap.Error(err))
		}
		return 0
	}

	alerts := c.alerter.Evaluate(snap)
	c.log.Debug("monitoring: run snapshot",
		zap.Int("runs", snap.RunsTotal),
		zap.Int("failed", snap.RunsFailed),
		zap.Float64("cost_usd", snap.CostUSD),
		zap.Int("alerts", len(alerts)),
	)
	if len(alerts) > 0 {
		sent := c.alerter.SendAlerts(ctx, alerts)
		c.log.Info("monitoring: alerts triggered",
			zap.Int("triggered", len(alerts)),
			zap.Int("sent", sent),
		)
	}
	return len(alerts)
}

package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// Probe re-runs the readiness check on a cron schedule so the backend gauge
// stays current even when nothing scrapes /readyz.
type Probe struct {
	checker  *Checker
	schedule cron.Schedule
	expr     string
	logger   *slog.Logger
	duration prometheus.Histogram
}

// NewProbe parses expr with the standard five-field cron syntax (descriptors
// like "@every 30s" included) and registers the probe's histogram.
func NewProbe(checker *Checker, expr string, logger *slog.Logger, reg prometheus.Registerer) (*Probe, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse probe schedule %q: %w", expr, err)
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "portal",
		Name:      "health_probe_duration_seconds",
		Help:      "Duration of one scheduled backend health probe.",
		Buckets:   prometheus.DefBuckets,
	})
	reg.MustRegister(duration)

	return &Probe{
		checker:  checker,
		schedule: sched,
		expr:     expr,
		logger:   logger.With("component", "health_probe"),
		duration: duration,
	}, nil
}

// Start blocks until ctx is done, firing a readiness check at each scheduled
// time. The checker logs failures; the probe only keeps the clock.
func (p *Probe) Start(ctx context.Context) {
	p.logger.Info("health probe started", "schedule", p.expr)

	for {
		timer := time.NewTimer(time.Until(p.schedule.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.Info("health probe shut down")
			return
		case <-timer.C:
			start := time.Now()
			p.checker.Readiness(ctx)
			p.duration.Observe(time.Since(start).Seconds())
		}
	}
}

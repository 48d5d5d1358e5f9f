package dashboard

import (
	"context"
	"time"

	"ride-hail-client/internal/common/logger"
	"ride-hail-client/internal/metrics"
)

// Poller runs a fetch on a fixed interval. A failed cycle gets exactly one
// immediate retry; a cycle that fails twice keeps the previous view state and
// waits for the next tick.
type Poller struct {
	resource string
	interval time.Duration
	fetch    func(ctx context.Context) error
	log      *logger.Logger
}

// NewPoller builds a poller for one resource. The resource name labels the
// poll metrics and log lines.
func NewPoller(resource string, interval time.Duration, fetch func(ctx context.Context) error, log *logger.Logger) *Poller {
	return &Poller{resource: resource, interval: interval, fetch: fetch, log: log}
}

// Run polls until ctx is cancelled. The first cycle fires immediately so the
// view is populated without waiting a full interval.
func (p *Poller) Run(ctx context.Context) {
	p.cycle(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

func (p *Poller) cycle(ctx context.Context) {
	err := p.fetch(ctx)
	if err != nil && ctx.Err() == nil {
		p.log.Warn(ctx, "poll_retry", "poll failed, retrying once", map[string]any{
			"resource": p.resource,
			"error":    err.Error(),
		})
		err = p.fetch(ctx)
	}
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		metrics.PollFailures.WithLabelValues(p.resource).Inc()
		p.log.Warn(ctx, "poll_failed", "poll failed after retry, keeping last state", map[string]any{
			"resource": p.resource,
			"error":    err.Error(),
		})
		return
	}
	metrics.Polls.WithLabelValues(p.resource).Inc()
}

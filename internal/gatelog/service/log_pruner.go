package service

import (
	"context"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/logging"
)

// LogPruneTarget is implemented by GateService.
type LogPruneTarget interface {
	PruneLogsOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// LogPruner periodically deletes logs older than a configurable retention
// period. It runs as a background goroutine and is stopped via its context
// or the Stop method.
//
// A retention of 0 disables pruning entirely.
type LogPruner struct {
	target    LogPruneTarget
	retention time.Duration
	interval  time.Duration
	logger    logging.Logger
	now       func() time.Time
	cancel    context.CancelFunc
	done      chan struct{}
}

// PrunerConfig holds the parameters for NewLogPruner.
type PrunerConfig struct {
	// RetentionDays is how many days of log history to keep.
	// 0 means keep everything (pruner will not start).
	RetentionDays int

	// IntervalHours is how often the pruner runs. Defaults to 6.
	IntervalHours int
}

// NewLogPruner creates a pruner but does not start it.
func NewLogPruner(target LogPruneTarget, cfg PrunerConfig, logger logging.Logger) *LogPruner {
	interval := time.Duration(cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &LogPruner{
		target:    target,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		interval:  interval,
		logger:    logger.With("module", "log_pruner"),
		now:       func() time.Time { return time.Now().UTC() },
		done:      make(chan struct{}),
	}
}

// Start runs an immediate prune, then repeats on the configured interval
// until ctx is cancelled or Stop is called.
func (p *LogPruner) Start(ctx context.Context) {
	if p.retention <= 0 {
		p.logger.Info(ctx, "log pruner disabled", "retention_days", 0)
		close(p.done)
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)

	go p.loop(ctx)

	p.logger.Info(ctx, "log pruner started",
		"retention_days", int(p.retention.Hours()/24), "interval_hours", int(p.interval.Hours()))
}

// Stop signals the pruner to exit and waits for it to finish.
func (p *LogPruner) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	<-p.done
}

func (p *LogPruner) loop(ctx context.Context) {
	defer close(p.done)

	p.prune(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *LogPruner) prune(ctx context.Context) {
	cutoff := p.now().Add(-p.retention)
	deleted, err := p.target.PruneLogsOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error(ctx, "log prune failed", "error", err)
		return
	}
	if deleted > 0 {
		p.logger.Info(ctx, "logs pruned", "deleted", deleted, "cutoff", cutoff.Format(time.RFC3339))
	}
}

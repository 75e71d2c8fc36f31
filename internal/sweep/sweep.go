// Package sweep runs the retention sweep on a cron schedule. The store
// also sweeps opportunistically on access; this is a safety net for
// quiet periods, and an extra run of an idempotent operation is
// harmless.
package sweep

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Sweepable is anything with an idempotent Sweep.
type Sweepable interface {
	Sweep() error
}

// Runner schedules periodic sweeps.
type Runner struct {
	cron   *cron.Cron
	target Sweepable
	logger *slog.Logger
}

// New creates a runner that sweeps target on the given cron schedule
// (standard 5-field expression or "@every 6h" style).
func New(target Sweepable, schedule string, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{cron: cron.New(), target: target, logger: logger}

	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("sweep: invalid schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Runner) run() {
	if err := r.target.Sweep(); err != nil {
		r.logger.Warn("scheduled sweep failed", "error", err)
		return
	}
	r.logger.Debug("scheduled sweep completed")
}

// Start begins the schedule. Blocks until context is cancelled.
func (r *Runner) Start(ctx context.Context) error {
	r.cron.Start()
	r.logger.Info("sweep scheduler started")

	<-ctx.Done()
	r.cron.Stop()
	r.logger.Info("sweep scheduler stopped")
	return ctx.Err()
}

package sweep

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingSweeper struct {
	count atomic.Int32
	err   error
}

func (c *countingSweeper) Sweep() error {
	c.count.Add(1)
	return c.err
}

func TestInvalidSchedule(t *testing.T) {
	if _, err := New(&countingSweeper{}, "not a schedule", nil); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

// cron's "@every" rounds sub-second intervals up to a full second, so
// firing is verified by invoking the scheduled job directly instead of
// waiting out a wall-clock tick.
func TestRunnerSweeps(t *testing.T) {
	target := &countingSweeper{}
	r, err := New(target, "@every 1h", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.run()
	if got := target.count.Load(); got != 1 {
		t.Errorf("sweep ran %d times, want 1", got)
	}

	// A failing sweep is logged, never propagated.
	target.err = errors.New("disk on fire")
	r.run()
	if got := target.count.Load(); got != 2 {
		t.Errorf("sweep ran %d times, want 2", got)
	}
}

func TestStartReturnsOnCancel(t *testing.T) {
	r, err := New(&countingSweeper{}, "@every 1h", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

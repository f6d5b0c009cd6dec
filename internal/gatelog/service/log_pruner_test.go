package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/service"
	"github.com/BrandonDHaskell/gatelog/server/internal/logging"
)

type recordingTarget struct {
	mu      sync.Mutex
	cutoffs []time.Time
	called  chan struct{}
}

func newRecordingTarget() *recordingTarget {
	return &recordingTarget{called: make(chan struct{}, 8)}
}

func (r *recordingTarget) PruneLogsOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	r.cutoffs = append(r.cutoffs, cutoff)
	r.mu.Unlock()
	r.called <- struct{}{}
	return 2, nil
}

func TestLogPruner_DisabledWhenRetentionZero(t *testing.T) {
	target := newRecordingTarget()
	pruner := service.NewLogPruner(target, service.PrunerConfig{
		RetentionDays: 0,
		IntervalHours: 1,
	}, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pruner.Start(ctx)
	// Stop should return immediately without error.
	pruner.Stop()

	if len(target.cutoffs) != 0 {
		t.Errorf("expected no prune calls, got %d", len(target.cutoffs))
	}
}

func TestLogPruner_PrunesOnStart(t *testing.T) {
	target := newRecordingTarget()
	pruner := service.NewLogPruner(target, service.PrunerConfig{
		RetentionDays: 30,
		IntervalHours: 1,
	}, logging.Nop())

	before := time.Now().UTC()
	pruner.Start(context.Background())
	defer pruner.Stop()

	select {
	case <-target.called:
	case <-time.After(2 * time.Second):
		t.Fatal("pruner did not run on start")
	}

	target.mu.Lock()
	cutoff := target.cutoffs[0]
	target.mu.Unlock()

	want := before.AddDate(0, 0, -30)
	if cutoff.Before(want.Add(-time.Second)) || cutoff.After(want.Add(time.Minute)) {
		t.Errorf("cutoff %v not about 30 days before %v", cutoff, before)
	}
}

func TestLogPruner_AgainstGateService(t *testing.T) {
	f := newFixture(t, service.Options{})
	seedVisits(t, f)

	// Logs carry fixture-clock stamps while the pruner reads the wall clock,
	// so only agreement between memory and store is checked.
	pruner := service.NewLogPruner(f.svc, service.PrunerConfig{RetentionDays: 1}, logging.Nop())
	pruner.Start(context.Background())
	pruner.Stop()

	stored, err := f.backend.ListLogs(context.Background())
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(stored) != len(f.svc.Logs()) {
		t.Errorf("service has %d logs, store has %d", len(f.svc.Logs()), len(stored))
	}
}

func TestLogPruner_StopIsIdempotent(t *testing.T) {
	pruner := service.NewLogPruner(newRecordingTarget(), service.PrunerConfig{
		RetentionDays: 30,
		IntervalHours: 1,
	}, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	pruner.Start(ctx)

	cancel()
	// Multiple stops should not panic.
	pruner.Stop()
	pruner.Stop()
}

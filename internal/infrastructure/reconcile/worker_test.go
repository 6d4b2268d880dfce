package reconcile

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

type countingUC struct {
	calls atomic.Int32
	err   error
}

func (c *countingUC) Reconcile(context.Context) (int, error) {
	c.calls.Add(1)
	return 0, c.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWorkerRunsPeriodically(t *testing.T) {
	uc := &countingUC{err: errors.New("boom")}
	w := NewWorker(uc, 10*time.Millisecond, logger.NewNopLogger())

	w.Start(context.Background())
	waitFor(t, func() bool { return uc.calls.Load() >= 3 })
	w.Stop()

	after := uc.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if uc.calls.Load() != after {
		t.Fatalf("worker kept running after Stop")
	}
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	uc := &countingUC{}
	w := NewWorker(uc, time.Hour, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	waitFor(t, func() bool { return uc.calls.Load() == 1 })
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("worker did not stop after context cancellation")
	}
}

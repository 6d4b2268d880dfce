package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/jitter"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

// Worker периодически запускает сверку изображений. Первый проход выполняется сразу после старта.
type Worker struct {
	uc       usecase.ImageReconcileUC
	interval time.Duration
	logger   logger.Logger
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewWorker(uc usecase.ImageReconcileUC, interval time.Duration, logger logger.Logger) *Worker {
	return &Worker{
		uc:       uc,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		if _, err := w.uc.Reconcile(ctx); err != nil && ctx.Err() == nil {
			w.logger.Warnf("image reconcile pass failed: %v", err)
		}

		// Джиттер разводит проходы разных реплик во времени.
		if !jitter.Sleep(ctx.Done(), jitter.Duration(w.interval, 0.1)) {
			w.logger.Infof("image reconcile worker stopped")
			return
		}
	}
}

package worker

import (
	"context"
	"time"

	"github.com/milstat-dev/milstat/pkg/domain/types"
	"github.com/milstat-dev/milstat/pkg/usecase"
	"github.com/milstat-dev/milstat/pkg/utils/logging"
)

// RefreshWorker periodically force-reloads unit state from the backend so
// long-running views converge on changes made by other members.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type RefreshWorker struct {
	uc       *usecase.UseCases
	units    []types.Unit
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewRefreshWorker creates a worker that refreshes the given units
func NewRefreshWorker(uc *usecase.UseCases, units []types.Unit, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		uc:       uc,
		units:    units,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop
// - Initial refresh and periodic refresh both run in a background goroutine
// - Does not block server startup
func (w *RefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("refresh worker starting",
		"interval", w.interval.String(),
		"units", len(w.units))

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *RefreshWorker) Stop() {
	logging.Default().Info("refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("refresh worker stopped")
}

func (w *RefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)

		case <-w.stopCh:
			logging.Default().Info("refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("refresh worker context cancelled")
			return
		}
	}
}

// refresh performs one cycle. A unit failing keeps its previous in-memory
// state and does not block the other units; the next tick retries.
func (w *RefreshWorker) refresh(ctx context.Context) {
	startTime := time.Now()

	var failed int
	for _, unit := range w.units {
		if err := w.uc.Reload(ctx, unit, true); err != nil {
			failed++
			logging.Default().Error("unit refresh failed (will retry next interval)",
				"unit", unit, "error", err.Error())
		}
	}

	logging.Default().Info("refresh cycle completed",
		"units", len(w.units),
		"failed", failed,
		"duration", time.Since(startTime).String())
}

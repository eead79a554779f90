package workers

import (
	"sync"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/dashstate"
	"go.uber.org/zap"
)

// ViewerSweep is a background worker that discards dashboard containers of
// viewers who have gone idle.
type ViewerSweep struct {
	registry *dashstate.Registry
	log      *zap.Logger
	interval time.Duration
	idleTTL  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewViewerSweep creates a sweep worker.
//
// Parameters:
//   - registry: the dashboard container registry
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
//   - idleTTL: how long a container may sit unused before it is closed (e.g., 15 minutes)
func NewViewerSweep(registry *dashstate.Registry, logger *zap.Logger, interval, idleTTL time.Duration) *ViewerSweep {
	return &ViewerSweep{
		registry: registry,
		log:      logger,
		interval: interval,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *ViewerSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("viewer sweep worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_ttl", w.idleTTL))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *ViewerSweep) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("viewer sweep worker stopped")
}

func (w *ViewerSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *ViewerSweep) sweep() {
	if n := w.registry.Sweep(w.idleTTL); n > 0 {
		w.log.Debug("discarded idle dashboard containers",
			zap.Int("count", n),
			zap.Int("remaining", w.registry.Len()))
	}
}

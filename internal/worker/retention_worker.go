package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/To3Knee/RealmQuest_Go/internal/roll"
)

// RetentionWorker periodically enqueues a cleanup job that prunes roll
// events older than the configured retention period.
type RetentionWorker struct {
	rollSvc       roll.Service
	pool          *Pool
	retentionDays int
	ticker        *time.Ticker
	shutdown      chan struct{}
	wg            sync.WaitGroup
	sweepInterval time.Duration
}

// NewRetentionWorker creates a new retention worker
func NewRetentionWorker(rollSvc roll.Service, pool *Pool, retentionDays int, sweepInterval time.Duration) *RetentionWorker {
	if sweepInterval <= 0 {
		sweepInterval = 6 * time.Hour // Default to 6 hours
	}

	return &RetentionWorker{
		rollSvc:       rollSvc,
		pool:          pool,
		retentionDays: retentionDays,
		shutdown:      make(chan struct{}),
		sweepInterval: sweepInterval,
	}
}

// Start starts the retention worker
func (w *RetentionWorker) Start() {
	slog.Info(LogMsgRetentionWorkerStarting,
		"sweep_interval", w.sweepInterval,
		"retention_days", w.retentionDays)

	w.ticker = time.NewTicker(w.sweepInterval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		// Run a sweep immediately on startup to catch any backlog
		w.enqueueSweep()

		for {
			select {
			case <-w.ticker.C:
				w.enqueueSweep()
			case <-w.shutdown:
				slog.Info(LogMsgRetentionWorkerShutdown)
				return
			}
		}
	}()
}

func (w *RetentionWorker) enqueueSweep() {
	w.pool.Enqueue(roll.NewCleanupJob(w.rollSvc, w.retentionDays))
	slog.Debug(LogMsgRetentionSweepEnqueued, "retention_days", w.retentionDays)
}

// Shutdown gracefully shuts down the worker
func (w *RetentionWorker) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down retention worker")

	if w.ticker != nil {
		w.ticker.Stop()
	}

	close(w.shutdown)

	// Wait for worker goroutine to finish with timeout
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("Retention worker shutdown complete")
		return nil
	case <-ctx.Done():
		slog.Warn("Retention worker shutdown timeout")
		return ctx.Err()
	}
}

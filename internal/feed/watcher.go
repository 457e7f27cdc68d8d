// Package feed implements the incremental roll feed consumer: a poll loop
// that forwards strictly-new roll events downstream exactly once per event
// at most, tracked by a persistent watermark.
package feed

import (
	"context"
	"sort"
	"time"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
	"github.com/To3Knee/RealmQuest_Go/internal/logger"
	"github.com/To3Knee/RealmQuest_Go/internal/metrics"
)

// Source supplies recent roll events, newest first.
type Source interface {
	FetchRecent(ctx context.Context, limit int) ([]domain.RollEvent, error)
}

// Sink receives forwarded roll events.
type Sink interface {
	Deliver(ctx context.Context, event domain.RollEvent) error
}

// WatermarkStore persists the consumer's high-water mark between runs.
// Get returns (nil, nil) when no watermark has been stored yet.
type WatermarkStore interface {
	Get(ctx context.Context, consumer string) (*domain.Watermark, error)
	Save(ctx context.Context, mark domain.Watermark) error
}

// Watcher polls a Source and forwards strictly-new events to a Sink.
// Delivery is at-most-once: the watermark advances past every event in a
// batch even when some deliveries fail, so a failed event is never retried.
type Watcher struct {
	consumer string
	source   Source
	sink     Sink
	marks    WatermarkStore

	interval time.Duration
	limit    int
	now      func() time.Time

	mark *domain.Watermark
}

// NewWatcher creates a feed watcher for one named consumer. Non-positive
// interval or limit fall back to defaults.
func NewWatcher(consumer string, source Source, sink Sink, marks WatermarkStore, interval time.Duration, limit int) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	return &Watcher{
		consumer: consumer,
		source:   source,
		sink:     sink,
		marks:    marks,
		interval: interval,
		limit:    limit,
		now:      time.Now,
	}
}

// Run polls until ctx is cancelled. Sleep comes before each poll, so
// cancellation is honored within one interval. Poll failures are logged
// and the loop continues.
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWatcherStarted, "consumer", w.consumer, "interval", w.interval, "limit", w.limit)

	if err := w.loadWatermark(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(LogMsgWatcherStopped, "consumer", w.consumer)
			return ctx.Err()
		case <-timer.C:
		}

		if err := w.pollOnce(ctx); err != nil {
			metrics.FeedPollFailures.WithLabelValues(w.consumer).Inc()
			log.Error(LogMsgPollFailed, "consumer", w.consumer, "error", err)
		}

		timer.Reset(w.interval)
	}
}

// loadWatermark restores the persisted watermark, or cold-starts at now so
// history present before the first run is never replayed.
func (w *Watcher) loadWatermark(ctx context.Context) error {
	stored, err := w.marks.Get(ctx, w.consumer)
	if err != nil {
		return err
	}
	if stored != nil {
		w.mark = stored
		return nil
	}

	now := w.now()
	mark := domain.Watermark{
		Consumer:  w.consumer,
		Epoch:     float64(now.UnixNano()) / 1e9,
		UpdatedAt: now.Format(UpdatedAtLayout),
	}
	logger.FromContext(ctx).Info(LogMsgColdStart, "consumer", w.consumer, "epoch", mark.Epoch)

	if err := w.marks.Save(ctx, mark); err != nil {
		return err
	}
	w.mark = &mark
	return nil
}

// pollOnce fetches one batch, forwards the strictly-new events in
// chronological order, and advances the watermark.
func (w *Watcher) pollOnce(ctx context.Context) error {
	log := logger.FromContext(ctx)

	events, err := w.source.FetchRecent(ctx, w.limit)
	if err != nil {
		return err
	}

	fresh := make([]domain.RollEvent, 0, len(events))
	for _, ev := range events {
		if ev.CreatedAtEpoch > w.mark.Epoch+EpochEpsilon {
			fresh = append(fresh, ev)
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	// Oldest first; roll id breaks epoch ties deterministically.
	sort.SliceStable(fresh, func(a, b int) bool {
		if fresh[a].CreatedAtEpoch != fresh[b].CreatedAtEpoch {
			return fresh[a].CreatedAtEpoch < fresh[b].CreatedAtEpoch
		}
		return fresh[a].RollID < fresh[b].RollID
	})

	forwarded := 0
	for _, ev := range fresh {
		if err := w.sink.Deliver(ctx, ev); err != nil {
			metrics.FeedDeliveryErrors.WithLabelValues(w.consumer).Inc()
			log.Warn(LogMsgDeliveryFailed, "consumer", w.consumer, "roll_id", ev.RollID, "error", err)
			continue
		}
		forwarded++
	}
	metrics.FeedEventsForwarded.WithLabelValues(w.consumer).Add(float64(forwarded))

	// Advance past the whole batch, failures included. Redelivery would be
	// worse than a dropped announcement here.
	last := fresh[len(fresh)-1]
	mark := domain.Watermark{
		Consumer:  w.consumer,
		Epoch:     last.CreatedAtEpoch,
		RollID:    last.RollID,
		UpdatedAt: w.now().Format(UpdatedAtLayout),
	}
	w.mark = &mark

	if err := w.marks.Save(ctx, mark); err != nil {
		// The in-memory mark still advanced; the next run replays at most
		// this batch.
		log.Error(LogMsgWatermarkSaveFailed, "consumer", w.consumer, "error", err)
	}

	log.Info(LogMsgEventsForwarded,
		"consumer", w.consumer,
		"forwarded", forwarded,
		"batch", len(fresh),
		"watermark_epoch", mark.Epoch)

	return nil
}

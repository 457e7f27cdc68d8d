package feed

import "time"

// Poll defaults
const (
	DefaultPollInterval = 3 * time.Second
	DefaultFetchLimit   = 25
)

// EpochEpsilon guards against float rounding when comparing event epochs
// to the watermark. Events within epsilon of the watermark are treated as
// already seen.
const EpochEpsilon = 1e-6

// UpdatedAtLayout renders the watermark's last-advance instant.
const UpdatedAtLayout = "2006-01-02 15:04:05"

// Log messages
const (
	LogMsgWatcherStarted      = "Feed watcher started"
	LogMsgWatcherStopped      = "Feed watcher stopped"
	LogMsgColdStart           = "No stored watermark, starting from now"
	LogMsgPollFailed          = "Feed poll failed"
	LogMsgDeliveryFailed      = "Failed to deliver roll event"
	LogMsgEventsForwarded     = "Forwarded new roll events"
	LogMsgWatermarkSaveFailed = "Failed to persist watermark"
)

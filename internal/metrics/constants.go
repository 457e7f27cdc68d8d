package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Roll engine metric names
const (
	MetricNameRollsCreated    = "rolls_created_total"
	MetricNameRollsCleared    = "rolls_cleared_total"
	MetricNameNotationParsers = "notation_parse_failures_total"
)

// Feed watcher metric names
const (
	MetricNameFeedEventsForwarded = "feed_events_forwarded_total"
	MetricNameFeedDeliveryErrors  = "feed_delivery_errors_total"
	MetricNameFeedPollFailures    = "feed_poll_failures_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

const (
	HelpTextRollsCreated    = "Total number of roll events recorded"
	HelpTextRollsCleared    = "Total number of roll events removed by clear operations"
	HelpTextNotationParsers = "Total number of dice notation parse failures"
)

const (
	HelpTextFeedEventsForwarded = "Total number of roll events forwarded to a feed sink"
	HelpTextFeedDeliveryErrors  = "Total number of per-event feed delivery failures"
	HelpTextFeedPollFailures    = "Total number of failed feed poll cycles"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelRollType = "roll_type"
	LabelReason   = "reason"
	LabelConsumer = "consumer"
)

// HTTPLatencyBuckets covers the latency range of store-backed handlers.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

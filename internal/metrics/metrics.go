package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Roll engine metrics
var (
	RollsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRollsCreated,
			Help: HelpTextRollsCreated,
		},
		[]string{LabelRollType},
	)

	RollsCleared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRollsCleared,
			Help: HelpTextRollsCleared,
		},
	)

	NotationParseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotationParsers,
			Help: HelpTextNotationParsers,
		},
		[]string{LabelReason},
	)
)

// Feed watcher metrics
var (
	FeedEventsForwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFeedEventsForwarded,
			Help: HelpTextFeedEventsForwarded,
		},
		[]string{LabelConsumer},
	)

	FeedDeliveryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFeedDeliveryErrors,
			Help: HelpTextFeedDeliveryErrors,
		},
		[]string{LabelConsumer},
	)

	FeedPollFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFeedPollFailures,
			Help: HelpTextFeedPollFailures,
		},
		[]string{LabelConsumer},
	)
)

// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Pipeline metrics
	EventsReceived    prometheus.Counter
	EventsFiltered    prometheus.Counter
	NotificationsSent prometheus.Counter
	DeliveryErrors    prometheus.Counter
	ArchiveErrors     prometheus.Counter

	// Enrichment metrics
	TokenLookupLatency prometheus.Histogram
	TokenLookupErrors  prometheus.Counter

	// Command metrics
	CommandsProcessed *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "solana_tx_relay"
	}

	return &Metrics{
		EventsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "events_received_total",
			Help:      "Total number of transaction events received",
		}),
		EventsFiltered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "events_filtered_total",
			Help:      "Total number of events dropped by the amount threshold",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "notifications_sent_total",
			Help:      "Total number of notifications delivered",
		}),
		DeliveryErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "delivery_errors_total",
			Help:      "Total number of failed delivery attempts",
		}),
		ArchiveErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "archive_errors_total",
			Help:      "Total number of failed notification archive writes",
		}),

		TokenLookupLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "token_lookup_latency_seconds",
			Help:      "Token info lookup latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		TokenLookupErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "token_lookup_errors_total",
			Help:      "Total number of token lookups that fell back to the unknown summary",
		}),

		CommandsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "commands",
			Name:      "processed_total",
			Help:      "Total number of chat commands processed by command and outcome",
		}, []string{"command", "outcome"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordEventReceived increments the events received counter.
func RecordEventReceived() {
	DefaultMetrics.EventsReceived.Inc()
}

// RecordEventFiltered increments the threshold-filtered counter.
func RecordEventFiltered() {
	DefaultMetrics.EventsFiltered.Inc()
}

// RecordNotification records one delivery attempt.
func RecordNotification(err error) {
	if err != nil {
		DefaultMetrics.DeliveryErrors.Inc()
		return
	}
	DefaultMetrics.NotificationsSent.Inc()
}

// RecordArchiveError increments the archive write error counter.
func RecordArchiveError() {
	DefaultMetrics.ArchiveErrors.Inc()
}

// RecordTokenLookup records token lookup latency and outcome.
func RecordTokenLookup(seconds float64, err error) {
	DefaultMetrics.TokenLookupLatency.Observe(seconds)
	if err != nil {
		DefaultMetrics.TokenLookupErrors.Inc()
	}
}

// RecordCommand records one processed chat command.
func RecordCommand(command, outcome string) {
	DefaultMetrics.CommandsProcessed.WithLabelValues(command, outcome).Inc()
}

package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	EntitiesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_entities_created_total",
			Help: "Entities created, by type",
		},
		[]string{"entity"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_events_published_total",
			Help: "Domain events handed to the broker",
		},
		[]string{"kind", "status"}, // status: success, failed
	)

	InboxCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_inbox_cache_lookups_total",
			Help: "Conversation list cache lookups",
		},
		[]string{"result"}, // result: hit, miss, error
	)
)

func RecordHTTPRequest(method, path, status string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

func RecordEntityCreated(entity string) {
	EntitiesCreated.WithLabelValues(entity).Inc()
}

func RecordEventPublished(kind string, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	EventsPublished.WithLabelValues(kind, status).Inc()
}

func RecordInboxLookup(result string) {
	InboxCacheLookups.WithLabelValues(result).Inc()
}

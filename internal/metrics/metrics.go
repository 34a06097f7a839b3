// Package metrics provides Prometheus metrics for wallsync.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ShufflesTotal counts shuffle attempts by pool and outcome.
	ShufflesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wallsync",
			Name:      "shuffles_total",
			Help:      "Total number of shuffle attempts",
		},
		[]string{"source", "result"},
	)

	// QuotaDegradationsTotal counts thumbnail fallbacks after a quota failure.
	QuotaDegradationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wallsync",
			Name:      "quota_degradations_total",
			Help:      "Writes retried with the thumbnail after exceeding the storage quota",
		},
		[]string{"key", "result"},
	)

	// ProviderRequestsTotal counts remote provider searches by outcome.
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wallsync",
			Name:      "provider_requests_total",
			Help:      "Total number of remote provider searches",
		},
		[]string{"status"},
	)

	// RequestsTotal counts cross-context requests by type and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wallsync",
			Name:      "requests_total",
			Help:      "Cross-context requests handled by the background context",
		},
		[]string{"type", "status"},
	)

	// PagesConnected tracks the number of attached page contexts.
	PagesConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wallsync",
			Name:      "pages_connected",
			Help:      "Number of page contexts attached to the bridge",
		},
	)
)

// RecordShuffle records a shuffle outcome.
func RecordShuffle(source, result string) {
	ShufflesTotal.WithLabelValues(source, result).Inc()
}

// RecordDegradation records a degrade-and-retry write.
func RecordDegradation(key string, ok bool) {
	QuotaDegradationsTotal.WithLabelValues(key, status(ok)).Inc()
}

// RecordProviderRequest records a provider search.
func RecordProviderRequest(status string) {
	ProviderRequestsTotal.WithLabelValues(status).Inc()
}

// RecordRequest records a handled cross-context request.
func RecordRequest(msgType string, ok bool) {
	RequestsTotal.WithLabelValues(msgType, status(ok)).Inc()
}

func status(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

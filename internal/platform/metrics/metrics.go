// Package metrics holds application-wide HTTP metrics. Feature-level
// metrics live next to their feature.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics shared by every HTTP route.
type Metrics struct {
	RequestLatency *prometheus.HistogramVec
}

// New creates and registers the HTTP metrics.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idsforge_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// ObserveRequest records one request's latency.
func (m *Metrics) ObserveRequest(method, path string, start time.Time) {
	m.RequestLatency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
}

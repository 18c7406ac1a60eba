package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics tracks inbound requests to the relay.
//
// Metrics:
//   - <ns>_http_requests_total: requests by method, route and status
//   - <ns>_http_request_duration_seconds: handler latency by method and route
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics creates and registers HTTP metrics with the provided registry.
func NewHTTPMetrics(namespace string, registry *prometheus.Registry) *HTTPMetrics {
	hm := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "path", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   upstreamDurationBuckets,
			},
			[]string{"method", "path"},
		),
	}

	registry.MustRegister(hm.requestsTotal, hm.requestDuration)

	return hm
}

// RecordRequest records one served request. path must be a route template,
// not the raw URL path.
func (hm *HTTPMetrics) RecordRequest(method, path, status string, duration time.Duration) {
	hm.requestsTotal.WithLabelValues(method, path, status).Inc()
	hm.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

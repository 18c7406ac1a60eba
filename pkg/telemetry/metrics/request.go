package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// upstreamDurationBuckets covers hosted completion latencies (100ms - 60s).
var upstreamDurationBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0}

// ChatMetrics tracks relay calls.
//
// Metrics:
//   - <ns>_chat_requests_total: relay calls by model and outcome
//   - <ns>_upstream_request_duration_seconds: upstream call latency by model
type ChatMetrics struct {
	// Relay call count
	requestsTotal *prometheus.CounterVec

	// Upstream latency histogram
	upstreamDuration *prometheus.HistogramVec
}

// NewChatMetrics creates and registers chat metrics with the provided registry.
func NewChatMetrics(namespace string, registry *prometheus.Registry) *ChatMetrics {
	cm := &ChatMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_requests_total",
				Help:      "Total number of chat relay calls by outcome",
			},
			[]string{"model", "outcome"},
		),

		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Duration of upstream chat completion calls in seconds",
				Buckets:   upstreamDurationBuckets,
			},
			[]string{"model"},
		),
	}

	registry.MustRegister(cm.requestsTotal, cm.upstreamDuration)

	return cm
}

// RecordChat records one relay call. Calls that never reached the upstream
// (zero latency) are counted but not timed.
func (cm *ChatMetrics) RecordChat(model, outcome string, upstreamLatency time.Duration) {
	cm.requestsTotal.WithLabelValues(model, outcome).Inc()

	if upstreamLatency > 0 {
		cm.upstreamDuration.WithLabelValues(model).Observe(upstreamLatency.Seconds())
	}
}

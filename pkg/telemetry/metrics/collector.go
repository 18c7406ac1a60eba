package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"promptrelay/pkg/config"
)

// OverflowModel replaces model labels once the cardinality limit is reached.
const OverflowModel = "other"

// defaultMaxModels bounds the number of distinct model labels. Callers pick
// the model name, so it cannot be trusted as an unbounded label.
const defaultMaxModels = 1000

// Collector owns every Prometheus metric exposed by promptrelay.
// It implements relay.Observer for chat outcomes and records HTTP traffic for
// the middleware. A Collector built from a disabled config records nothing.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	// Chat relay metrics
	chatMetrics *ChatMetrics

	// Inbound HTTP metrics
	httpMetrics *HTTPMetrics

	// Cardinality tracking for the model label
	models *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil a private registry is created,
// so the collector never touches the global default registry.
//
// Example:
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	router.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
		models:   NewCardinalityLimiter(defaultMaxModels),
	}

	c.chatMetrics = NewChatMetrics(cfg.Namespace, registry)
	c.httpMetrics = NewHTTPMetrics(cfg.Namespace, registry)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: cfg.Namespace}),
	)

	return c
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// ObserveChat records the outcome of one relay call.
//
// Parameters:
//   - model: the resolved model name
//   - outcome: "success" or a failure kind such as "rate_limit"
//   - upstreamLatency: time spent in the upstream call; zero when the
//     upstream was never contacted
func (c *Collector) ObserveChat(model, outcome string, upstreamLatency time.Duration) {
	if !c.config.Enabled {
		return
	}

	if !c.models.Allow(model) {
		model = OverflowModel
	}

	c.chatMetrics.RecordChat(model, outcome, upstreamLatency)
}

// ObserveHTTPRequest records one inbound HTTP request.
func (c *Collector) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.httpMetrics.RecordRequest(method, path, strconv.Itoa(status), duration)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label value is allowed. Returns true if the value
// already exists or if we haven't reached the cardinality limit yet.
func (cl *CardinalityLimiter) Allow(value string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[value]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[value]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[value] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}

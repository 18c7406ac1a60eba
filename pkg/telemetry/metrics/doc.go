// Package metrics provides Prometheus metrics collection for promptrelay.
//
// # Overview
//
// A Collector registers all metrics on a private registry and exposes them
// through Handler. It records two things: the outcome of every relay call
// (as a relay.Observer) and every inbound HTTP request (from the metrics
// middleware). When metrics are disabled the collector is still safe to call
// and records nothing.
//
// # Metrics
//
//	promptrelay_chat_requests_total{model,outcome}
//	promptrelay_upstream_request_duration_seconds{model}
//	promptrelay_http_requests_total{method,path,status}
//	promptrelay_http_request_duration_seconds{method,path}
//
// plus the standard Go runtime and process collectors.
//
// # Cardinality Management
//
// Callers choose the model name. After 1000 distinct models every new model
// is recorded under the label "other".
package metrics

// Package telemetry groups promptrelay's observability packages.
//
// # Components
//
//   - logging: structured slog logging with request-scoped fields, secret
//     redaction, and an optional rotating log file
//   - metrics: Prometheus collectors for chat relay outcomes, upstream
//     latency, and HTTP traffic, served from a private registry
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, cfg.Upstream.APIKey))
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	http.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
package telemetry

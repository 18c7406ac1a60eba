// Package logging provides structured logging with secret redaction.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON or text output to stdout, optionally mirrored to a rotating file
//   - Redaction of the upstream API key and bearer tokens
//   - Request IDs picked up from the context of *Context calls
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, cfg.Upstream.APIKey))
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	logger.InfoContext(ctx, "chat relay succeeded", "model", model)
//
// # Redaction
//
// When redaction is enabled, values logged under keys such as api_key,
// authorization or token are replaced with "***", and any string that
// contains the configured secret, an sk- style key or a Bearer token is
// masked in place. Prompts and completions are logged as they are.
package logging

package config

import "time"

// Config is the root configuration structure for promptrelay.
// A Config is built once at startup and passed to the components that need it;
// nothing in the process mutates it afterwards.
type Config struct {
	// Proxy contains HTTP server configuration including listen address
	// and timeouts.
	Proxy ProxyConfig `yaml:"proxy"`

	// Upstream describes the hosted chat-completion API that prompts are
	// relayed to.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Chat contains behavior settings for the /chat endpoint.
	Chat ChatConfig `yaml:"chat"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProxyConfig contains configuration for the HTTP server.
type ProxyConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8000", "0.0.0.0:8000").
	// Default: "127.0.0.1:8000"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. Zero means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It must exceed the upstream timeout or slow completions are
	// cut off before they can be relayed.
	// Default: 90s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown. In-flight requests still
	// running after this are dropped.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// UpstreamConfig contains configuration for the OpenAI-compatible upstream.
type UpstreamConfig struct {
	// Name identifies the upstream in logs and metrics.
	// Default: "openrouter"
	Name string `yaml:"name"`

	// BaseURL is the API root. Requests go to BaseURL + "/chat/completions".
	// Default: "https://openrouter.ai/api/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey is sent as a bearer token. Usually supplied through the
	// OPENROUTER_API_KEY environment variable rather than the file.
	APIKey string `yaml:"api_key"`

	// DefaultModel is used when a request does not name a model.
	// Default: "openai/gpt-oss-20b"
	DefaultModel string `yaml:"default_model"`

	// Timeout bounds a single upstream call.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// AppURL is sent as the HTTP-Referer attribution header when set.
	AppURL string `yaml:"app_url"`

	// AppName is sent as the X-Title attribution header when set.
	AppName string `yaml:"app_name"`
}

// ChatConfig controls the /chat endpoint.
type ChatConfig struct {
	// ErrorStatusCodes maps upstream failures to non-200 status codes
	// (401, 429, 504, 400, 502). When false every relayed upstream failure
	// is answered with 200 and an error body.
	// Default: false
	ErrorStatusCodes bool `yaml:"error_status_codes"`

	// MaxBodyBytes limits the size of an inbound /chat body.
	// Default: 1048576 (1MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// TelemetryConfig contains configuration for logging and metrics.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: json or text.
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource adds file:line to each record.
	AddSource bool `yaml:"add_source"`

	// RedactSecrets masks the API key and bearer tokens in log output.
	// Default: true
	RedactSecrets *bool `yaml:"redact_secrets"`

	// File configures an optional rotating log file written in addition
	// to stdout.
	File LogFileConfig `yaml:"file"`
}

// ShouldRedact reports whether secret redaction is on. Unset means on.
func (c LoggingConfig) ShouldRedact() bool {
	return c.RedactSecrets == nil || *c.RedactSecrets
}

// LogFileConfig configures the rotating log file.
type LogFileConfig struct {
	// Path is the log file location. Empty disables file output.
	Path string `yaml:"path"`

	// MaxSizeMB is the size at which the file is rotated.
	// Default: 10
	MaxSizeMB int `yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files kept.
	// Default: 5
	MaxBackups int `yaml:"max_backups"`

	// MaxAgeDays is how long rotated files are kept.
	// Default: 30
	MaxAgeDays int `yaml:"max_age_days"`

	// Compress gzips rotated files.
	Compress bool `yaml:"compress"`
}

// MetricsConfig contains configuration for the Prometheus scrape endpoint.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the scrape endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "promptrelay"
	Namespace string `yaml:"namespace"`
}

// Redacted returns a copy of the configuration that is safe to print.
// The API key is reduced to its last four characters.
func (c *Config) Redacted() *Config {
	out := *c
	out.Upstream.APIKey = MaskSecret(c.Upstream.APIKey)
	return &out
}

// MaskSecret hides all but the last four characters of s.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

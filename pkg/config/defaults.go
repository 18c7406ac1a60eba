package config

import "time"

// Default values for configuration fields.
const (
	// Proxy defaults
	DefaultListenAddress   = "127.0.0.1:8000"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 90 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// Upstream defaults
	DefaultUpstreamName    = "openrouter"
	DefaultUpstreamBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel           = "openai/gpt-oss-20b"
	DefaultUpstreamTimeout = 60 * time.Second

	// Chat defaults
	DefaultChatMaxBodyBytes = int64(1048576) // 1MB

	// Telemetry defaults
	DefaultLoggingLevel      = "info"
	DefaultLoggingFormat     = "json"
	DefaultLogFileMaxSizeMB  = 10
	DefaultLogFileMaxBackups = 5
	DefaultLogFileMaxAgeDays = 30
	DefaultMetricsPath       = "/metrics"
	DefaultMetricsNamespace  = "promptrelay"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in zero-valued fields with their defaults.
// Fields that are already set are left alone, so it is safe to call more than once.
func ApplyDefaults(cfg *Config) {
	// Proxy defaults
	if cfg.Proxy.ListenAddress == "" {
		cfg.Proxy.ListenAddress = DefaultListenAddress
	}
	if cfg.Proxy.ReadTimeout == 0 {
		cfg.Proxy.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Proxy.WriteTimeout == 0 {
		cfg.Proxy.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Proxy.IdleTimeout == 0 {
		cfg.Proxy.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Proxy.ShutdownTimeout == 0 {
		cfg.Proxy.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Proxy.MaxHeaderBytes == 0 {
		cfg.Proxy.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// Upstream defaults
	if cfg.Upstream.Name == "" {
		cfg.Upstream.Name = DefaultUpstreamName
	}
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = DefaultUpstreamBaseURL
	}
	if cfg.Upstream.DefaultModel == "" {
		cfg.Upstream.DefaultModel = DefaultModel
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = DefaultUpstreamTimeout
	}

	// Chat defaults
	if cfg.Chat.MaxBodyBytes == 0 {
		cfg.Chat.MaxBodyBytes = DefaultChatMaxBodyBytes
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Logging.File.MaxSizeMB == 0 {
		cfg.Telemetry.Logging.File.MaxSizeMB = DefaultLogFileMaxSizeMB
	}
	if cfg.Telemetry.Logging.File.MaxBackups == 0 {
		cfg.Telemetry.Logging.File.MaxBackups = DefaultLogFileMaxBackups
	}
	if cfg.Telemetry.Logging.File.MaxAgeDays == 0 {
		cfg.Telemetry.Logging.File.MaxAgeDays = DefaultLogFileMaxAgeDays
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}

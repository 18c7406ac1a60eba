package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix shared by all environment overrides.
const EnvPrefix = "PROMPTRELAY_"

// APIKeyEnv is the conventional variable holding the OpenRouter API key.
const APIKeyEnv = "OPENROUTER_API_KEY"

// LoadOptions controls how Load resolves its sources.
type LoadOptions struct {
	// EnvFile is a dotenv file merged into the process environment before
	// overrides are read. Variables already set in the environment win.
	// A missing file is ignored unless RequireEnvFile is set.
	EnvFile string

	// RequireEnvFile makes a missing EnvFile an error.
	RequireEnvFile bool

	// RequireFile makes a missing YAML file an error. Otherwise a missing
	// file means "defaults plus environment".
	RequireFile bool
}

// Parse decodes YAML configuration and applies defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Load resolves the full configuration:
//
//  1. Default values
//  2. Values from the YAML file at path (optional unless opts.RequireFile)
//  3. Values from opts.EnvFile merged into the environment
//  4. Environment variable overrides
//  5. Validation
func Load(path string, opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := LoadDotEnv(opts.EnvFile); err != nil {
			if opts.RequireEnvFile || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to load env file %q: %w", opts.EnvFile, err)
			}
		}
	}

	var cfg *Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !opts.RequireFile:
		cfg = Default()
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv merges a dotenv file into the process environment without
// replacing variables that are already set.
func LoadDotEnv(path string) error {
	return godotenv.Load(path)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Unparsable numeric, boolean and duration values are ignored.
func applyEnvOverrides(cfg *Config) {
	// Proxy overrides
	if val := os.Getenv(EnvPrefix + "PROXY_LISTEN_ADDRESS"); val != "" {
		cfg.Proxy.ListenAddress = val
	}
	if val := os.Getenv(EnvPrefix + "PROXY_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Proxy.ReadTimeout = d
		}
	}
	if val := os.Getenv(EnvPrefix + "PROXY_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Proxy.WriteTimeout = d
		}
	}
	if val := os.Getenv(EnvPrefix + "PROXY_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Proxy.ShutdownTimeout = d
		}
	}

	// Upstream overrides. The bare OPENROUTER_API_KEY is read first so the
	// prefixed variable can still take precedence over it.
	if val := os.Getenv(APIKeyEnv); val != "" {
		cfg.Upstream.APIKey = val
	}
	if val := os.Getenv(EnvPrefix + "UPSTREAM_API_KEY"); val != "" {
		cfg.Upstream.APIKey = val
	}
	if val := os.Getenv(EnvPrefix + "UPSTREAM_BASE_URL"); val != "" {
		cfg.Upstream.BaseURL = val
	}
	if val := os.Getenv(EnvPrefix + "UPSTREAM_DEFAULT_MODEL"); val != "" {
		cfg.Upstream.DefaultModel = val
	}
	if val := os.Getenv(EnvPrefix + "UPSTREAM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstream.Timeout = d
		}
	}
	if val := os.Getenv(EnvPrefix + "UPSTREAM_APP_URL"); val != "" {
		cfg.Upstream.AppURL = val
	}
	if val := os.Getenv(EnvPrefix + "UPSTREAM_APP_NAME"); val != "" {
		cfg.Upstream.AppName = val
	}

	// Chat overrides
	if val := os.Getenv(EnvPrefix + "CHAT_ERROR_STATUS_CODES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Chat.ErrorStatusCodes = b
		}
	}
	if val := os.Getenv(EnvPrefix + "CHAT_MAX_BODY_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Chat.MaxBodyBytes = i
		}
	}

	// Telemetry overrides
	if val := os.Getenv(EnvPrefix + "TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_LOGGING_FILE_PATH"); val != "" {
		cfg.Telemetry.Logging.File.Path = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}

package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Default()

	if err := Validate(cfg); err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MissingAPIKeyIsAllowed(t *testing.T) {
	cfg := Default()
	cfg.Upstream.APIKey = ""

	if err := Validate(cfg); err != nil {
		t.Errorf("missing API key should not fail validation, got: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}

	if !strings.Contains(validationErr.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", validationErr.Error())
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Config)
		errorField string
	}{
		{
			name:       "listen address without port",
			mutate:     func(c *Config) { c.Proxy.ListenAddress = "localhost" },
			errorField: "proxy.listen_address",
		},
		{
			name:       "negative write timeout",
			mutate:     func(c *Config) { c.Proxy.WriteTimeout = -time.Second },
			errorField: "proxy.write_timeout",
		},
		{
			name:       "relative base URL",
			mutate:     func(c *Config) { c.Upstream.BaseURL = "openrouter.ai/api/v1" },
			errorField: "upstream.base_url",
		},
		{
			name:       "non-http base URL",
			mutate:     func(c *Config) { c.Upstream.BaseURL = "ftp://openrouter.ai" },
			errorField: "upstream.base_url",
		},
		{
			name:       "blank default model",
			mutate:     func(c *Config) { c.Upstream.DefaultModel = "   " },
			errorField: "upstream.default_model",
		},
		{
			name:       "zero upstream timeout",
			mutate:     func(c *Config) { c.Upstream.Timeout = 0 },
			errorField: "upstream.timeout",
		},
		{
			name:       "negative body limit",
			mutate:     func(c *Config) { c.Chat.MaxBodyBytes = -1 },
			errorField: "chat.max_body_bytes",
		},
		{
			name:       "unknown log level",
			mutate:     func(c *Config) { c.Telemetry.Logging.Level = "loud" },
			errorField: "telemetry.logging.level",
		},
		{
			name:       "unknown log format",
			mutate:     func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			errorField: "telemetry.logging.format",
		},
		{
			name: "metrics path without slash",
			mutate: func(c *Config) {
				c.Telemetry.Metrics.Enabled = true
				c.Telemetry.Metrics.Path = "metrics"
			},
			errorField: "telemetry.metrics.path",
		},
		{
			name: "metrics path colliding with chat",
			mutate: func(c *Config) {
				c.Telemetry.Metrics.Enabled = true
				c.Telemetry.Metrics.Path = "/chat"
			},
			errorField: "telemetry.metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}

			found := false
			for _, fe := range validationErr.Errors {
				if fe.Field == tt.errorField {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected error for field %q, got: %v", tt.errorField, err)
			}
		})
	}
}

func TestFieldError_Error(t *testing.T) {
	err := FieldError{Field: "upstream.timeout", Message: "timeout must be positive"}

	want := "upstream.timeout: timeout must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

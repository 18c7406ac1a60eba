// Package config provides configuration loading for promptrelay.
//
// Configuration comes from a YAML file, a dotenv file and the process
// environment. The result is a plain *Config that callers pass to the
// components they construct; there is no package-level instance.
//
// # Configuration Loading
//
//	cfg, err := config.Load("config.yaml", config.LoadOptions{EnvFile: ".env"})
//
// A missing YAML file is not an error unless LoadOptions.RequireFile is set,
// so the service runs with nothing but OPENROUTER_API_KEY exported.
//
// # Configuration Precedence
//
// Values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from the YAML file
//  3. Values from the dotenv file, for variables not already in the environment
//  4. Environment variable overrides
//  5. Validation (fails fast if invalid)
//
// # Environment Variable Overrides
//
// Overrides follow the naming convention PROMPTRELAY_SECTION_FIELD:
//
//   - PROMPTRELAY_PROXY_LISTEN_ADDRESS overrides proxy.listen_address
//   - PROMPTRELAY_UPSTREAM_DEFAULT_MODEL overrides upstream.default_model
//   - PROMPTRELAY_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// OPENROUTER_API_KEY sets upstream.api_key. PROMPTRELAY_UPSTREAM_API_KEY
// takes precedence over it when both are set.
//
// # Validation
//
// Validation collects every failing field before returning:
//
//	configuration validation failed with 2 errors:
//	  - upstream.base_url: base URL "ftp://x" must be an absolute http or https URL
//	  - telemetry.logging.level: invalid logging level "loud": must be 'debug', 'info', 'warn', or 'error'
//
// # Example Configuration
//
//	proxy:
//	  listen_address: "0.0.0.0:8000"
//
//	upstream:
//	  default_model: "openai/gpt-oss-20b"
//	  timeout: 60s
//	  app_name: "my-app"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"promptrelay/pkg/cli"
	"promptrelay/pkg/config"
	"promptrelay/pkg/providers"
	"promptrelay/pkg/providers/openai"
	"promptrelay/pkg/relay"
	"promptrelay/pkg/telemetry/logging"
)

// loadConfig resolves the configuration for cmd. The YAML file is only
// required when --config was given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile, config.LoadOptions{
		EnvFile:     envFile,
		RequireFile: cmd.Flags().Changed("config"),
	})
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) && len(verr.Errors) > 0 {
			first := verr.Errors[0]
			return nil, cli.NewConfigError(first.Field, verr.Error())
		}
		return nil, cli.NewConfigError(cfgFile, err.Error())
	}
	return cfg, nil
}

// newLogger builds the process logger. The API key is registered as a
// secret so it is masked anywhere it shows up in log output. A nil w
// writes to stdout.
func newLogger(cfg *config.Config, w io.Writer) (*logging.Logger, error) {
	logCfg := logging.FromConfig(cfg.Telemetry.Logging, cfg.Upstream.APIKey)
	logCfg.Writer = w
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return logger, nil
}

// newProvider builds the OpenAI-compatible upstream client.
func newProvider(cfg config.UpstreamConfig) (*openai.Provider, error) {
	headers := map[string]string{}
	if cfg.AppURL != "" {
		headers["HTTP-Referer"] = cfg.AppURL
	}
	if cfg.AppName != "" {
		headers["X-Title"] = cfg.AppName
	}

	provider, err := openai.NewProvider(providers.ProviderConfig{
		Name:    cfg.Name,
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
		Headers: headers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream provider: %w", err)
	}
	return provider, nil
}

// newRelay wires the relay service on top of provider.
func newRelay(cfg config.UpstreamConfig, provider providers.Provider, observer relay.Observer, logger *logging.Logger) (*relay.Service, error) {
	return relay.NewService(relay.Options{
		Provider:     provider,
		DefaultModel: cfg.DefaultModel,
		UpstreamName: upstreamDisplayName(cfg.Name),
		Observer:     observer,
		Logger:       logger.Slog(),
	})
}

// upstreamDisplayName is the upstream name shown in the health message.
func upstreamDisplayName(name string) string {
	if name == config.DefaultUpstreamName {
		return "OpenRouter"
	}
	return name
}

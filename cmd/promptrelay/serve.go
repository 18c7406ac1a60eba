package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"promptrelay/pkg/cli"
	"promptrelay/pkg/relay"
	"promptrelay/pkg/server"
	"promptrelay/pkg/telemetry/metrics"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the relay server",
	Long: `Start the relay server with the specified configuration.

The server answers GET / with a liveness message and relays POST /chat
prompts to the configured upstream.

Examples:
  # Start with default config
  promptrelay serve

  # Start with custom config
  promptrelay serve --config /etc/promptrelay/config.yaml

  # Override listen address
  promptrelay serve --listen 0.0.0.0:8000

  # Validate config without starting server
  promptrelay serve --dry-run`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Apply flag overrides
	if serveFlags.listenAddress != "" {
		cfg.Proxy.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}

	logger, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer logger.Close()
	slog.SetDefault(logger.Slog())

	if serveFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	provider, err := newProvider(cfg.Upstream)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer provider.Close()

	var collector *metrics.Collector
	var observer relay.Observer
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Telemetry.Metrics, nil)
		observer = collector
	}

	svc, err := newRelay(cfg.Upstream, provider, observer, logger)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	logger.Info("relay configured",
		"version", Version,
		"log_level", logger.Level().String(),
		"upstream", cfg.Upstream.Name,
		"endpoint", provider.Endpoint(),
		"default_model", cfg.Upstream.DefaultModel,
		"api_key_set", cfg.Upstream.APIKey != "",
		"error_status_codes", cfg.Chat.ErrorStatusCodes,
	)

	srv := server.NewServer(server.Options{
		Proxy:     cfg.Proxy,
		Chat:      cfg.Chat,
		Metrics:   cfg.Telemetry.Metrics,
		Relay:     svc,
		Collector: collector,
		Logger:    logger.Slog(),
	})

	ctx, stop := cli.SetupSignalHandler(logger.Slog())
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}

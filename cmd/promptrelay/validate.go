package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"promptrelay/pkg/cli"
	"promptrelay/pkg/config"
)

var validateFlags struct {
	output string
	quiet  bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and print the effective settings",
	Long: `Load the configuration the same way serve does, validate it, and print
the effective settings. The API key is masked.

Examples:
  # Validate config.yaml and .env in the working directory
  promptrelay validate

  # Validate a specific file and print JSON
  promptrelay validate --config /etc/promptrelay/config.yaml --output json

  # Exit status only
  promptrelay validate --quiet`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.output, "output", "o", "yaml", "output format: yaml, json")
	validateCmd.Flags().BoolVarP(&validateFlags.quiet, "quiet", "q", false, "print nothing on success")
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(validateFlags.output)
	if err != nil {
		return err
	}
	if format == cli.FormatText {
		format = cli.FormatYAML
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if validateFlags.quiet {
		return nil
	}
	return printConfig(cmd.OutOrStdout(), cfg, format)
}

// printConfig writes the redacted configuration.
func printConfig(w io.Writer, cfg *config.Config, format cli.OutputFormat) error {
	if err := cli.NewFormatter(format).FormatTo(w, cfg.Redacted()); err != nil {
		return fmt.Errorf("failed to print configuration: %w", err)
	}
	return nil
}

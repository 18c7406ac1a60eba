package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"promptrelay/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "promptrelay",
	Short: "promptrelay - a minimal HTTP relay for OpenRouter chat completions",
	Long: `promptrelay accepts a prompt over HTTP, forwards it to OpenRouter as a
single user message, and returns the model's reply.

Configuration is read from a YAML file, a .env file, and the environment.
The API key is taken from OPENROUTER_API_KEY.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the command's status.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file merged into the environment")
}

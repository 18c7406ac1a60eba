package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"promptrelay/pkg/cli"
	"promptrelay/pkg/proxy/handlers"
	"promptrelay/pkg/relay"
)

var askFlags struct {
	model  string
	output string
}

var askCmd = &cobra.Command{
	Use:   "ask [prompt...]",
	Short: "Send one prompt upstream and print the reply",
	Long: `Send a single prompt through the relay without starting the server.

The prompt is the command arguments joined by spaces, or standard input when
no arguments are given. The reply is printed to stdout. Upstream failures
are printed to stderr and exit with status 1.

Examples:
  promptrelay ask "Why is the sky blue?"
  echo "Summarize this" | promptrelay ask --model openai/gpt-4o-mini
  promptrelay ask --output json "hello"`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVarP(&askFlags.model, "model", "m", "", "model to use (defaults to upstream.default_model)")
	askCmd.Flags().StringVarP(&askFlags.output, "output", "o", "text", "output format: text, json, yaml")
}

func runAsk(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(askFlags.output)
	if err != nil {
		return err
	}

	prompt, err := readPrompt(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Keep stdout for the reply.
	cfg.Telemetry.Logging.Level = quietLevel(cfg.Telemetry.Logging.Level)
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Close()

	provider, err := newProvider(cfg.Upstream)
	if err != nil {
		return cli.NewCommandError("ask", err)
	}
	defer provider.Close()

	svc, err := newRelay(cfg.Upstream, provider, nil, logger)
	if err != nil {
		return cli.NewCommandError("ask", err)
	}

	ctx, stop := cli.SetupSignalHandler(logger.Slog())
	defer stop()

	return ask(ctx, svc, relay.PromptRequest{Prompt: prompt, Model: askFlags.model}, format, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// askOutput is the structured form of a reply for json and yaml output.
// It has the same shape as the /chat response body.
type askOutput struct {
	Prompt   string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Response string `json:"response,omitempty" yaml:"response,omitempty"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ask relays one prompt and prints the result. A failure is reported and
// returned as exit status 1.
func ask(ctx context.Context, r handlers.Relay, req relay.PromptRequest, format cli.OutputFormat, out, errOut io.Writer) error {
	result := r.Chat(ctx, req)
	formatter := cli.NewFormatter(format)

	switch res := result.(type) {
	case *relay.Success:
		if format == cli.FormatText {
			return formatter.FormatTo(out, res.Response)
		}
		return formatter.FormatTo(out, askOutput{Prompt: res.Prompt, Response: res.Response, Model: res.Model})
	case *relay.Failure:
		var err error
		if format == cli.FormatText {
			err = formatter.FormatTo(errOut, "Error: "+res.Message)
		} else {
			err = formatter.FormatTo(out, askOutput{Error: res.Message})
		}
		if err != nil {
			return err
		}
		return cli.NewExitError(1, nil)
	default:
		return fmt.Errorf("unexpected result type %T", result)
	}
}

// readPrompt joins args, or reads in when there are none.
func readPrompt(args []string, in io.Reader) (string, error) {
	var prompt string
	if len(args) > 0 {
		prompt = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt from stdin: %w", err)
		}
		prompt = strings.TrimRight(string(data), "\r\n")
	}

	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("a prompt is required: pass it as arguments or on stdin")
	}
	return prompt, nil
}

// quietLevel raises the log level to at least warn.
func quietLevel(level string) string {
	if level == "error" {
		return level
	}
	return "warn"
}

/*
Package cli provides command-line helpers shared by the promptrelay commands.

Output Formatting:

Command results can be printed as text, JSON, or YAML:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, result); err != nil {
		return err
	}

Exit Codes:

Commands return an *ExitError to choose the process exit status; main passes
the error returned by the root command to ExitCode.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(logger)
	defer stop()
*/
package cli

package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SetupSignalHandler returns a context that is canceled on the first SIGINT
// or SIGTERM. A second signal exits the process immediately with status 1.
// The returned stop func cancels the context and releases the signal
// registration; after stop, signals get their default behavior again.
func SetupSignalHandler(logger *slog.Logger) (context.Context, context.CancelFunc) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, shutting down", "signal", sig.String())
			cancel()
		case <-stopped:
			return
		}

		// ctx is already done here; only stop ends the wait.
		select {
		case sig := <-sigChan:
			logger.Warn("received second signal, exiting", "signal", sig.String())
			os.Exit(1)
		case <-stopped:
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(stopped)
			cancel()
		})
	}
	return ctx, stop
}

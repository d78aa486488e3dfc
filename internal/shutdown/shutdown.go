// Package shutdown runs a blocking component until it returns, the process
// receives SIGINT or SIGTERM, or the parent context ends.
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Func runs or stops a component.
type Func func(ctx context.Context) error

// RunWithGracefulShutdown starts runner and waits for it to finish. On a
// signal or parent cancellation it cancels the runner's context, calls stop
// with a context bounded by timeout, and waits up to timeout for the runner
// to return. A runner ending with context.Canceled during shutdown is not an
// error.
func RunWithGracefulShutdown(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	runner Func,
	stop Func,
) error {
	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	runDone := make(chan error, 1)
	go func() {
		runDone <- runner(runCtx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-runDone:
		return err
	case sig := <-sigChan:
		logger.Info("received signal, initiating shutdown", "signal", sig)
	case <-ctx.Done():
		logger.Info("context done, initiating shutdown", "cause", context.Cause(ctx))
	}

	runCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if stop != nil {
		if err := stop(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}

	select {
	case err := <-runDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded", "timeout", timeout)
	}

	logger.Info("shutdown complete")
	return nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

// setupSignalHandler returns a context that is cancelled on the first
// interrupt. A second interrupt kills the process the usual way.
func setupSignalHandler(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Warn("Received signal, abandoning simulation", "signal", sig.String())
			cancel()
			signal.Stop(sigChan)
		case <-ctx.Done():
			signal.Stop(sigChan)
		}
	}()

	return ctx, cancel
}

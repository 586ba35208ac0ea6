package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"vfsh/internal/logging"
)

var (
	logger = logging.GetLogger()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logger.Debug("Exiting with error: %v", err)
		stop()
		os.Exit(1)
	}
}

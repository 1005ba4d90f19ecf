package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/clambin/ecobee-controller/internal/cmd/cli"
)

var (
	// overridden during build
	version = "change-me"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.RootCmd.Version = version
	if err := cli.RootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("failed to start", "err", err)
		cancel()
		os.Exit(1)
	}
}

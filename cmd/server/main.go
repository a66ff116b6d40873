// Command server runs the gatekeeper webhook service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sevigo/pr-gatekeeper/internal/wire"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("pr-gatekeeper exited", "error", err)
		os.Exit(1)
	}
}

// run serves webhooks until ctx is cancelled or the listener fails. Queued
// builds are delivered before it returns.
func run(ctx context.Context) error {
	app, cleanup, err := wire.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize gatekeeper: %w", err)
	}
	defer cleanup()

	serveErr := make(chan error, 1)
	go func() { serveErr <- app.Start() }()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
		return app.Stop()
	case err := <-serveErr:
		return errors.Join(err, app.Stop())
	}
}

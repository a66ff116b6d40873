// Package app initializes and orchestrates the main components of the gatekeeper.
// It wires together the configuration, server, and other services.
package app

import (
	"log/slog"

	"github.com/sevigo/pr-gatekeeper/internal/config"
	"github.com/sevigo/pr-gatekeeper/internal/core"
	"github.com/sevigo/pr-gatekeeper/internal/server"
	"github.com/sevigo/pr-gatekeeper/internal/whitelist"
)

// App holds the main application components.
type App struct {
	cfg        *config.Config
	processor  *whitelist.Processor
	server     *server.Server
	logger     *slog.Logger
	dispatcher core.JobDispatcher
}

// NewApp assembles the application from its already constructed parts.
func NewApp(cfg *config.Config, processor *whitelist.Processor, dispatcher core.JobDispatcher, srv *server.Server, logger *slog.Logger) *App {
	logger.Info("gatekeeper application initialized",
		"whitelisting_enabled", processor.WhitelistingEnabled(),
		"storage_driver", cfg.Storage.Driver,
		"max_workers", cfg.Server.MaxWorkers)

	return &App{
		cfg:        cfg,
		processor:  processor,
		server:     srv,
		logger:     logger,
		dispatcher: dispatcher,
	}
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting gatekeeper",
		"server_port", a.cfg.Server.Port,
		"max_workers", a.cfg.Server.MaxWorkers)

	err := a.server.Start()
	if err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}

	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down gatekeeper services")

	// Stop the HTTP server first to prevent new incoming requests.
	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
		// Continue to stop other components even if the server failed.
	}

	// Stop the job dispatcher, allowing queued builds to be delivered.
	a.dispatcher.Stop()

	if serverErr != nil {
		a.logger.Error("gatekeeper stopped with errors", "error", serverErr)
		return serverErr
	}

	a.logger.Info("gatekeeper stopped successfully")
	return nil
}

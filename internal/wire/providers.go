// Package wire assembles the application's dependency graph.
package wire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/wire"

	"github.com/sevigo/pr-gatekeeper/internal/app"
	"github.com/sevigo/pr-gatekeeper/internal/ci"
	"github.com/sevigo/pr-gatekeeper/internal/command"
	"github.com/sevigo/pr-gatekeeper/internal/config"
	"github.com/sevigo/pr-gatekeeper/internal/core"
	"github.com/sevigo/pr-gatekeeper/internal/github"
	"github.com/sevigo/pr-gatekeeper/internal/jobs"
	"github.com/sevigo/pr-gatekeeper/internal/logger"
	"github.com/sevigo/pr-gatekeeper/internal/server"
	"github.com/sevigo/pr-gatekeeper/internal/server/handler"
	"github.com/sevigo/pr-gatekeeper/internal/storage"
	"github.com/sevigo/pr-gatekeeper/internal/whitelist"
)

// ProcessorSet provides the whitelist processor and what it is built from.
var ProcessorSet = wire.NewSet(
	provideLogWriter,
	provideSlogLogger,
	provideLists,
	provideFormat,
	provideCommands,
	provideCIDeps,
	provideBackends,
	provideProcessor,
)

// AppSet provides everything InitializeApp needs except the configuration.
var AppSet = wire.NewSet(
	ProcessorSet,
	app.NewApp,
	server.NewServer,
	provideDispatcher,
	provideWebhookHandler,
)

func provideLogWriter(cfg *config.Config) io.Writer {
	return logger.Writer(cfg.Logging)
}

func provideSlogLogger(cfg *config.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(cfg.Logging, writer)
}

func provideLists(cfg *config.Config, logger *slog.Logger) (*storage.Lists, func(), error) {
	return storage.Open(cfg, logger)
}

// provideFormat loads the format file. A missing file leaves the gate
// running with no commands and no CI backends.
func provideFormat(cfg *config.Config, logger *slog.Logger) (*config.Format, error) {
	fc, err := config.LoadFormatConfig(cfg.FormatFile)
	if errors.Is(err, config.ErrFormatNotFound) {
		logger.Warn("format file not found, no commands or CI backends are active", "file", cfg.FormatFile)
		return &fc.Format, nil
	}
	if err != nil {
		return nil, err
	}
	return &fc.Format, nil
}

func provideCommands(format *config.Format, logger *slog.Logger) ([]core.Command, error) {
	cmds, err := command.NewRegistry(command.DefaultCatalog(), logger).Load(format.Commands)
	if err != nil {
		return nil, fmt.Errorf("failed to load commands: %w", err)
	}
	return cmds, nil
}

func provideCIDeps(cfg *config.Config, logger *slog.Logger) ci.Deps {
	return ci.Deps{
		Config:     cfg,
		Logger:     logger,
		HTTPClient: &http.Client{Timeout: cfg.CI.Webhook.Timeout},
		NewGitHubClient: func(ctx context.Context) (github.Client, error) {
			return github.NewClient(ctx, &cfg.GitHub, logger)
		},
	}
}

// provideBackends treats any backend that fails to initialize as fatal.
func provideBackends(ctx context.Context, format *config.Format, deps ci.Deps) ([]core.ContinuousIntegration, error) {
	backends, err := ci.NewRegistry(ci.DefaultCatalog(), deps).Load(ctx, format.CI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize CI backends: %w", err)
	}
	return backends, nil
}

func provideProcessor(cfg *config.Config, commands []core.Command, backends []core.ContinuousIntegration, lists *storage.Lists, logger *slog.Logger) *whitelist.Processor {
	return whitelist.NewProcessor(commands, backends, lists, cfg.Whitelist.Enabled, logger)
}

func provideDispatcher(cfg *config.Config, processor *whitelist.Processor, logger *slog.Logger) (core.JobDispatcher, func()) {
	d := jobs.NewDispatcher(processor, cfg.Server.MaxWorkers, cfg.Server.QueueSize, logger)
	return d, d.Stop
}

func provideWebhookHandler(cfg *config.Config, processor *whitelist.Processor, dispatcher core.JobDispatcher, logger *slog.Logger) *handler.WebhookHandler {
	return handler.NewWebhookHandler(cfg.GitHub.WebhookSecret, processor, dispatcher, logger)
}

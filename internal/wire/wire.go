//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/pr-gatekeeper/internal/app"
	"github.com/sevigo/pr-gatekeeper/internal/config"
	"github.com/sevigo/pr-gatekeeper/internal/whitelist"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		config.LoadConfig,
		AppSet,
	)
	return &app.App{}, nil, nil
}

func InitializeProcessor(ctx context.Context) (*whitelist.Processor, func(), error) {
	wire.Build(
		config.LoadCLIConfig,
		ProcessorSet,
	)
	return &whitelist.Processor{}, nil, nil
}

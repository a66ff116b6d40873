package ci

import (
	"context"
	"log/slog"

	"github.com/sevigo/pr-gatekeeper/internal/core"
)

// logCI only records build requests. Useful as a dry run.
type logCI struct {
	logger *slog.Logger
}

func newLogCI(deps Deps) core.ContinuousIntegration {
	return &logCI{logger: deps.Logger}
}

func (c *logCI) Key() string { return KeyLog }

func (c *logCI) Init(context.Context) error { return nil }

func (c *logCI) TriggerBuild(_ context.Context, event *core.Event) error {
	s := event.Subject()
	c.logger.Info("build requested", "repository", s.Repository, "pr", s.Number, "delivery_id", event.DeliveryID)
	return nil
}

func (c *logCI) TriggerFailedBuild(_ context.Context, event *core.Event) error {
	s := event.Subject()
	c.logger.Warn("build reported as failed", "repository", s.Repository, "pr", s.Number, "delivery_id", event.DeliveryID)
	return nil
}

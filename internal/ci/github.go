package ci

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sevigo/pr-gatekeeper/internal/core"
	"github.com/sevigo/pr-gatekeeper/internal/github"
)

var errNoGitHubClient = errors.New("no GitHub client factory configured")

func newGitHubClient(ctx context.Context, deps Deps) (github.Client, error) {
	if deps.NewGitHubClient == nil {
		return nil, errNoGitHubClient
	}
	return deps.NewGitHubClient(ctx)
}

// githubActionsCI starts GitHub Actions workflows through repository_dispatch.
type githubActionsCI struct {
	deps   Deps
	client github.Client
}

func newGitHubActionsCI(deps Deps) core.ContinuousIntegration {
	return &githubActionsCI{deps: deps}
}

func (c *githubActionsCI) Key() string { return KeyGitHubActions }

func (c *githubActionsCI) Init(ctx context.Context) error {
	if c.client != nil {
		return nil
	}
	cfg := c.deps.Config.CI.GitHubActions
	if cfg.EventType == "" || cfg.FailedEventType == "" {
		return errors.New("CI_GITHUB_EVENT_TYPE and CI_GITHUB_FAILED_EVENT_TYPE are required")
	}
	client, err := newGitHubClient(ctx, c.deps)
	if err != nil {
		return err
	}
	c.client = client
	return nil
}

func (c *githubActionsCI) TriggerBuild(ctx context.Context, event *core.Event) error {
	return c.dispatch(ctx, c.deps.Config.CI.GitHubActions.EventType, core.BuildRequested, event)
}

func (c *githubActionsCI) TriggerFailedBuild(ctx context.Context, event *core.Event) error {
	return c.dispatch(ctx, c.deps.Config.CI.GitHubActions.FailedEventType, core.BuildFailed, event)
}

func (c *githubActionsCI) dispatch(ctx context.Context, eventType string, kind core.BuildKind, event *core.Event) error {
	n := newNotification(kind, event, false)
	owner, repo, err := github.SplitRepository(n.Repository)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode client payload: %w", err)
	}
	if err := c.client.Dispatch(ctx, owner, repo, eventType, payload); err != nil {
		return fmt.Errorf("repository dispatch %s to %s: %w", eventType, n.Repository, err)
	}
	c.deps.Logger.Info("repository dispatch sent", "repository", n.Repository, "pr", n.Number, "event_type", eventType)
	return nil
}

// githubStatusCI mirrors build requests as commit statuses on the pull
// request head.
type githubStatusCI struct {
	deps    Deps
	updater github.StatusUpdater
}

func newGitHubStatusCI(deps Deps) core.ContinuousIntegration {
	return &githubStatusCI{deps: deps}
}

func (c *githubStatusCI) Key() string { return KeyGitHubStatus }

func (c *githubStatusCI) Init(ctx context.Context) error {
	if c.updater != nil {
		return nil
	}
	client, err := newGitHubClient(ctx, c.deps)
	if err != nil {
		return err
	}
	c.updater = github.NewStatusUpdater(client, c.deps.Config.CI.GitHubStatus.TargetURL)
	return nil
}

func (c *githubStatusCI) TriggerBuild(ctx context.Context, event *core.Event) error {
	return c.updater.Update(ctx, event, github.StatePending, "Build approved and requested")
}

func (c *githubStatusCI) TriggerFailedBuild(ctx context.Context, event *core.Event) error {
	return c.updater.Update(ctx, event, github.StateFailure, "Build reported as failed")
}

// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/go-github/v73/github"
)

// Client defines the GitHub operations the CI backends rely on.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	Dispatch(ctx context.Context, owner, repo, eventType string, payload json.RawMessage) error
	CreateStatus(ctx context.Context, owner, repo, ref string, status *github.RepoStatus) error
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client to provide a focused,
// testable interface for application-specific GitHub operations.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// GetPullRequest retrieves a single pull request by its number.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, err
	}
	return pr, nil
}

// Dispatch sends a repository_dispatch event, which starts every workflow in
// the repository listening for eventType.
func (g *gitHubClient) Dispatch(ctx context.Context, owner, repo, eventType string, payload json.RawMessage) error {
	opts := github.DispatchRequestOptions{EventType: eventType}
	if len(payload) > 0 {
		opts.ClientPayload = &payload
	}
	_, _, err := g.client.Repositories.Dispatch(ctx, owner, repo, opts)
	if err != nil {
		g.logger.Error("failed to send repository dispatch", "owner", owner, "repo", repo, "event_type", eventType, "error", err)
	}
	return err
}

// CreateStatus sets a commit status on ref.
func (g *gitHubClient) CreateStatus(ctx context.Context, owner, repo, ref string, status *github.RepoStatus) error {
	_, _, err := g.client.Repositories.CreateStatus(ctx, owner, repo, ref, status)
	if err != nil {
		g.logger.Error("failed to create commit status", "owner", owner, "repo", repo, "ref", ref, "error", err)
	}
	return err
}

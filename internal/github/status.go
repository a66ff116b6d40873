package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-gatekeeper/internal/core"
)

// StatusContext labels the commit statuses this service creates.
const StatusContext = "pr-gatekeeper"

// Commit status states.
const (
	StatePending = "pending"
	StateFailure = "failure"
)

var errNoRepository = errors.New("event does not name a repository")

// StatusUpdater reports the gate's decision on the pull request head commit.
type StatusUpdater interface {
	Update(ctx context.Context, event *core.Event, state, description string) error
}

type statusUpdater struct {
	client    Client
	targetURL string
}

// NewStatusUpdater creates and returns a new instance of a statusUpdater.
// targetURL may be empty.
func NewStatusUpdater(client Client, targetURL string) StatusUpdater {
	return &statusUpdater{client: client, targetURL: targetURL}
}

// Update sets the commit status for the pull request in event. Comment
// deliveries do not carry the head commit, so it is looked up.
func (s *statusUpdater) Update(ctx context.Context, event *core.Event, state, description string) error {
	subject := event.Subject()
	owner, repo, err := SplitRepository(subject.Repository)
	if err != nil {
		return err
	}
	if subject.Number, err = event.Number(); err != nil {
		return err
	}

	sha := subject.HeadSHA
	if sha == "" {
		pr, err := s.client.GetPullRequest(ctx, owner, repo, subject.Number)
		if err != nil {
			return fmt.Errorf("failed to resolve head commit of %s#%d: %w", subject.Repository, subject.Number, err)
		}
		sha = pr.GetHead().GetSHA()
	}
	if sha == "" {
		return fmt.Errorf("%w: no head commit for %s#%d", core.ErrMalformedEvent, subject.Repository, subject.Number)
	}

	status := &github.RepoStatus{
		State:       github.Ptr(state),
		Description: github.Ptr(truncateDescription(description)),
		Context:     github.Ptr(StatusContext),
	}
	if s.targetURL != "" {
		status.TargetURL = github.Ptr(s.targetURL)
	}
	if err := s.client.CreateStatus(ctx, owner, repo, sha, status); err != nil {
		return fmt.Errorf("failed to set %s status on %s@%s: %w", state, subject.Repository, sha, err)
	}
	return nil
}

// SplitRepository splits "owner/name" into its parts.
func SplitRepository(fullName string) (string, string, error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("%w: %w %q", core.ErrMalformedEvent, errNoRepository, fullName)
	}
	return owner, repo, nil
}

// GitHub rejects descriptions longer than 140 characters.
func truncateDescription(s string) string {
	const limit = 140
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

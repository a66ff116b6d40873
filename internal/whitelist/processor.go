// Package whitelist routes pull request comments to the configured commands
// and fans approved builds out to the CI backends.
package whitelist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/sevigo/pr-gatekeeper/internal/core"
	"github.com/sevigo/pr-gatekeeper/internal/storage"
)

const actionCreated = "created"

var _ core.Gate = (*Processor)(nil)

// Processor holds the active commands and CI backends together with the two
// authorization lists. It is safe for concurrent use; the lists are the only
// mutable state.
type Processor struct {
	commands []core.Command
	backends []core.ContinuousIntegration
	lists    *storage.Lists
	enabled  bool
	logger   *slog.Logger
}

// NewProcessor creates a processor. enabled is the whitelisting feature gate;
// the processor only exposes it, callers decide what it means for them.
func NewProcessor(commands []core.Command, backends []core.ContinuousIntegration, lists *storage.Lists, enabled bool, logger *slog.Logger) *Processor {
	return &Processor{
		commands: commands,
		backends: backends,
		lists:    lists,
		enabled:  enabled,
		logger:   logger,
	}
}

// WhitelistingEnabled reports the feature gate the processor was built with.
func (p *Processor) WhitelistingEnabled() bool {
	return p.enabled
}

// ProcessComment runs every command whose pattern matches the comment body in
// full, in registration order. Only newly created comments on pull requests
// are considered. A failing command does not stop the ones after it; all
// failures are returned together.
func (p *Processor) ProcessComment(ctx context.Context, event *core.Event) error {
	if len(p.commands) == 0 {
		return nil
	}

	isPR, err := event.IsPullRequest()
	if err != nil {
		return err
	}
	if !isPR {
		p.logger.Debug("ignoring comment on a plain issue", "delivery_id", event.DeliveryID)
		return nil
	}

	action, err := event.Action()
	if err != nil {
		return err
	}
	if action != actionCreated {
		p.logger.Debug("ignoring comment action", "action", action, "delivery_id", event.DeliveryID)
		return nil
	}

	body, err := event.CommentBody()
	if err != nil {
		return err
	}

	var errs *multierror.Error
	for _, cmd := range p.commands {
		if !cmd.Matches(body) {
			continue
		}
		p.logger.Info("command matched", "command", cmd.Key(), "delivery_id", event.DeliveryID)
		if err := cmd.Process(ctx, event, p); err != nil {
			p.logger.Error("command failed", "command", cmd.Key(), "delivery_id", event.DeliveryID, "error", err)
			errs = multierror.Append(errs, fmt.Errorf("command %q: %w", cmd.Key(), err))
		}
	}
	return errs.ErrorOrNil()
}

// TriggerBuild asks every CI backend to build the pull request in event.
func (p *Processor) TriggerBuild(ctx context.Context, event *core.Event) error {
	return p.fanOut(ctx, event, core.BuildRequested)
}

// TriggerFailedBuild reports the pull request in event as failed to every CI
// backend.
func (p *Processor) TriggerFailedBuild(ctx context.Context, event *core.Event) error {
	return p.fanOut(ctx, event, core.BuildFailed)
}

func (p *Processor) fanOut(ctx context.Context, event *core.Event, kind core.BuildKind) error {
	var errs *multierror.Error
	for i, backend := range p.backends {
		var err error
		switch kind {
		case core.BuildFailed:
			err = backend.TriggerFailedBuild(ctx, event)
		default:
			err = backend.TriggerBuild(ctx, event)
		}
		if err != nil {
			p.logger.Error("CI backend failed", "kind", kind, "backend", backendKey(backend, i), "delivery_id", event.DeliveryID, "error", err)
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// backendKey names a backend in logs by its catalog key when it has one.
func backendKey(backend core.ContinuousIntegration, i int) string {
	if k, ok := backend.(interface{ Key() string }); ok {
		return k.Key()
	}
	return fmt.Sprintf("#%d", i)
}

// IsUserEligibleToRunCI reports whether username is on the user or the admin
// list.
func (p *Processor) IsUserEligibleToRunCI(ctx context.Context, username string) (bool, error) {
	onUser, err := p.IsUserOnUserList(ctx, username)
	if err != nil || onUser {
		return onUser, err
	}
	return p.IsUserOnAdminList(ctx, username)
}

// IsUserOnAdminList reports admin list membership.
func (p *Processor) IsUserOnAdminList(ctx context.Context, username string) (bool, error) {
	return p.lists.Admin.Contains(ctx, username)
}

// IsUserOnUserList reports user list membership. Admins are not implied.
func (p *Processor) IsUserOnUserList(ctx context.Context, username string) (bool, error) {
	return p.lists.User.Contains(ctx, username)
}

// AddUserToUserList adds username to the user list and reports whether it was
// newly added.
func (p *Processor) AddUserToUserList(ctx context.Context, username string) (bool, error) {
	return p.lists.User.Add(ctx, username)
}

package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/pr-gatekeeper/internal/core"
)

// whitelistAdd puts the comment author on the user list.
type whitelistAdd struct {
	pattern
	logger *slog.Logger
}

func newWhitelistAdd(logger *slog.Logger) core.Command {
	return &whitelistAdd{logger: logger}
}

func (c *whitelistAdd) Key() string { return KeyWhitelistAdd }

func (c *whitelistAdd) Process(ctx context.Context, event *core.Event, gate core.Gate) error {
	author, err := event.CommentAuthor()
	if err != nil {
		return err
	}

	added, err := gate.AddUserToUserList(ctx, author)
	if err != nil {
		return fmt.Errorf("adding %s to user list: %w", author, err)
	}
	c.logger.Info("whitelist request processed", "username", author, "added", added)
	return nil
}

// addUser lets an admin put the pull request author on the user list. A new
// entry also starts the build the author was waiting for.
type addUser struct {
	pattern
	logger *slog.Logger
}

func newAddUser(logger *slog.Logger) core.Command {
	return &addUser{logger: logger}
}

func (c *addUser) Key() string { return KeyAddUser }

func (c *addUser) Process(ctx context.Context, event *core.Event, gate core.Gate) error {
	commenter, err := event.CommentAuthor()
	if err != nil {
		return err
	}
	admin, err := gate.IsUserOnAdminList(ctx, commenter)
	if err != nil {
		return err
	}
	if !admin {
		c.logger.Info("ignoring command from non-admin", "username", commenter)
		return nil
	}

	prAuthor, err := event.PRAuthor()
	if err != nil {
		return err
	}
	added, err := gate.AddUserToUserList(ctx, prAuthor)
	if err != nil {
		return fmt.Errorf("adding %s to user list: %w", prAuthor, err)
	}
	if !added {
		c.logger.Info("pull request author already on user list", "username", prAuthor)
		return nil
	}

	c.logger.Info("pull request author added to user list", "username", prAuthor, "approved_by", commenter)
	return gate.TriggerBuild(ctx, event)
}

// okToTest lets an admin start a build without whitelisting the author.
type okToTest struct {
	pattern
	logger *slog.Logger
}

func newOkToTest(logger *slog.Logger) core.Command {
	return &okToTest{logger: logger}
}

func (c *okToTest) Key() string { return KeyOkToTest }

func (c *okToTest) Process(ctx context.Context, event *core.Event, gate core.Gate) error {
	commenter, err := event.CommentAuthor()
	if err != nil {
		return err
	}
	admin, err := gate.IsUserOnAdminList(ctx, commenter)
	if err != nil {
		return err
	}
	if !admin {
		c.logger.Info("ignoring command from non-admin", "username", commenter)
		return nil
	}
	return gate.TriggerBuild(ctx, event)
}

// retest re-runs CI for any eligible commenter. With failed set it reports
// the build as failed instead.
type retest struct {
	pattern
	failed bool
	logger *slog.Logger
}

func newRetest(logger *slog.Logger) core.Command {
	return &retest{logger: logger}
}

func newRetestFailed(logger *slog.Logger) core.Command {
	return &retest{failed: true, logger: logger}
}

func (c *retest) Key() string {
	if c.failed {
		return KeyRetestFailed
	}
	return KeyRetest
}

func (c *retest) Process(ctx context.Context, event *core.Event, gate core.Gate) error {
	commenter, err := event.CommentAuthor()
	if err != nil {
		return err
	}
	eligible, err := gate.IsUserEligibleToRunCI(ctx, commenter)
	if err != nil {
		return err
	}
	if !eligible {
		c.logger.Info("ignoring command from user not on any list", "username", commenter)
		return nil
	}

	if c.failed {
		return gate.TriggerFailedBuild(ctx, event)
	}
	return gate.TriggerBuild(ctx, event)
}

package core

import (
	"context"
)

// Command is a pluggable action fired by a pull request comment whose body
// matches the command's pattern. Implementations are resolved by key from a
// closed catalog, receive their pattern once after resolution and are
// immutable afterwards.
type Command interface {
	// Key returns the configuration key the command is registered under.
	Key() string

	// CommandRegex returns the pattern assigned to the command.
	CommandRegex() string

	// SetCommandRegex assigns the pattern. The whole comment body must match
	// it for the command to fire.
	SetCommandRegex(pattern string) error

	// Matches reports whether body matches the assigned pattern in full.
	Matches(body string) bool

	// Process performs the command's side effect for a matched event. The gate
	// gives access to the authorization lists and the CI backends.
	Process(ctx context.Context, event *Event, gate Gate) error
}

// ContinuousIntegration is a pluggable CI system notified when a pull request
// is allowed to build, or when its build must be reported as failed.
//
//go:generate mockgen -destination=../../mocks/mock_ci.go -package=mocks . ContinuousIntegration
type ContinuousIntegration interface {
	// Init prepares the backend. It is called once at load time, before any
	// trigger call, and must be safe to call again.
	Init(ctx context.Context) error

	// TriggerBuild asks the CI system to build the pull request in event.
	TriggerBuild(ctx context.Context, event *Event) error

	// TriggerFailedBuild reports the pull request in event as failed.
	TriggerFailedBuild(ctx context.Context, event *Event) error
}

// Gate is the capability set handed to commands: authorization queries and
// mutations plus access to the CI fan-out.
//
//go:generate mockgen -destination=../../mocks/mock_gate.go -package=mocks . Gate
type Gate interface {
	IsUserEligibleToRunCI(ctx context.Context, username string) (bool, error)
	IsUserOnAdminList(ctx context.Context, username string) (bool, error)
	IsUserOnUserList(ctx context.Context, username string) (bool, error)
	AddUserToUserList(ctx context.Context, username string) (bool, error)
	TriggerBuild(ctx context.Context, event *Event) error
	TriggerFailedBuild(ctx context.Context, event *Event) error
}

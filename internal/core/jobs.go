package core

import (
	"context"
)

// BuildKind selects which CI trigger a queued job calls.
type BuildKind string

const (
	BuildRequested BuildKind = "build"
	BuildFailed    BuildKind = "failed"
)

// BuildJob is a CI notification queued for asynchronous delivery.
type BuildJob struct {
	Kind  BuildKind
	Event *Event
}

// BuildTrigger fans a pull request event out to the active CI backends.
type BuildTrigger interface {
	TriggerBuild(ctx context.Context, event *Event) error
	TriggerFailedBuild(ctx context.Context, event *Event) error
}

// JobDispatcher defines the contract for a system that can accept and queue
// build jobs for asynchronous processing. This interface decouples the event
// source (e.g., a webhook handler) from the CI fan-out.
type JobDispatcher interface {
	// Dispatch accepts a BuildJob and queues it for processing.
	// It returns an error if the job cannot be queued, for example, if the
	// queue is full, providing a mechanism for backpressure.
	Dispatch(ctx context.Context, job *BuildJob) error

	// Stop drains the queue and waits for running jobs.
	Stop()
}

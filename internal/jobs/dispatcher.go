// Package jobs runs CI notifications in the background so webhook deliveries
// can be acknowledged without waiting for the CI backends.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sevigo/pr-gatekeeper/internal/core"
)

var (
	ErrQueueFull = errors.New("job queue is full")
	ErrStopped   = errors.New("dispatcher is stopped")
)

// dispatcher implements core.JobDispatcher and manages a pool of worker goroutines
// delivering build jobs to the CI fan-out.
type dispatcher struct {
	trigger    core.BuildTrigger   // CI fan-out called by each worker.
	jobQueue   chan *core.BuildJob // Queue of pending build jobs.
	maxWorkers int                 // Number of concurrent workers.
	wg         sync.WaitGroup      // Tracks active workers for graceful shutdown.
	mu         sync.RWMutex        // Guards stopped against concurrent Dispatch.
	stopped    bool
	logger     *slog.Logger
}

// NewDispatcher initializes a dispatcher with a worker pool.
// If maxWorkers or queueSize is 0 or negative, it defaults to 1.
func NewDispatcher(trigger core.BuildTrigger, maxWorkers, queueSize int, logger *slog.Logger) core.JobDispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	d := &dispatcher{
		trigger:    trigger,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan *core.BuildJob, queueSize),
		logger:     logger,
	}
	d.startWorkers()
	return d
}

// startWorkers launches maxWorkers goroutines to process jobs from the queue.
func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker processes jobs from the queue until it's closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Debug("starting build worker", "id", workerID)

	for job := range d.jobQueue {
		d.processJob(workerID, job)
	}

	d.logger.Debug("shutting down build worker", "id", workerID)
}

func (d *dispatcher) processJob(workerID int, job *core.BuildJob) {
	subject := job.Event.Subject()
	d.logger.Info("worker processing job",
		"worker_id", workerID,
		"kind", job.Kind,
		"repo", subject.Repository,
		"pr", subject.Number,
	)

	// The webhook request that queued the job is already answered, so its
	// context cannot be used here.
	ctx := context.Background()
	var err error
	switch job.Kind {
	case core.BuildFailed:
		err = d.trigger.TriggerFailedBuild(ctx, job.Event)
	default:
		err = d.trigger.TriggerBuild(ctx, job.Event)
	}
	if err != nil {
		d.logger.Error("build job failed",
			"kind", job.Kind,
			"repo", subject.Repository,
			"pr", subject.Number,
			"error", err,
		)
	}
}

// Dispatch queues a build job for processing by a worker.
func (d *dispatcher) Dispatch(_ context.Context, job *core.BuildJob) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	subject := job.Event.Subject()
	select {
	case d.jobQueue <- job:
		d.logger.Info("queued build job", "kind", job.Kind, "repo", subject.Repository, "pr", subject.Number)
		return nil
	default:
		return fmt.Errorf("%w, cannot accept build job for %s#%d", ErrQueueFull, subject.Repository, subject.Number)
	}
}

// Stop gracefully shuts down the dispatcher, waiting for all queued jobs to
// finish. It is safe to call more than once.
func (d *dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobQueue)
	d.mu.Unlock()

	d.logger.Info("stopping dispatcher and waiting for jobs to finish")
	d.wg.Wait()
	d.logger.Info("all build jobs have finished")
}

package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/RecipeVault_Go/internal/logger"
	"github.com/osse101/RecipeVault_Go/internal/repository"
)

// JobRunner executes one attempt of an ingestion job. Satisfied by the
// orchestrator facade.
type JobRunner interface {
	Run(ctx context.Context, jobID uuid.UUID) error
}

// RetryWorker polls the job store for pending jobs whose eligibility time
// has passed and fans each one out to the pool. The scheduler runs it on a
// fixed interval; the worker itself never sleeps.
type RetryWorker struct {
	jobs      repository.JobStore
	runner    JobRunner
	pool      *Pool
	batchSize int
}

// NewRetryWorker creates a new retry poller
func NewRetryWorker(jobs repository.JobStore, runner JobRunner, pool *Pool, batchSize int) *RetryWorker {
	return &RetryWorker{
		jobs:      jobs,
		runner:    runner,
		pool:      pool,
		batchSize: batchSize,
	}
}

// Process lists due jobs and enqueues a run for each. Claiming happens in
// the runner's compare-and-swap, so enqueueing the same job twice is safe.
func (w *RetryWorker) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	due, err := w.jobs.ListDue(ctx, time.Now().UTC(), w.batchSize)
	if err != nil {
		log.Error(LogMsgRetryPollFailed, "error", err)
		return err
	}
	if len(due) == 0 {
		return nil
	}

	for _, job := range due {
		jobID := job.JobID
		accepted := w.pool.Enqueue(JobFunc(func(ctx context.Context) error {
			return w.runner.Run(ctx, jobID)
		}))
		if !accepted {
			// Leave the rest for the next poll; NextRunAt keeps them due
			log.Warn(LogMsgRetryQueueFull, "job_id", jobID)
			return nil
		}
		log.Info(LogMsgRetryJobEnqueued, "job_id", jobID, "attempts", job.Attempts)
	}
	return nil
}

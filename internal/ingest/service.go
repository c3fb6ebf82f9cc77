// Package ingest drives the image-to-recipe pipeline as retryable
// background jobs: fetch the image, run OCR, parse, persist the parsed
// recipe. Job state lives in a JobStore with compare-and-swap transitions
// so concurrent workers can never run the same job twice.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/RecipeVault_Go/internal/domain"
	"github.com/osse101/RecipeVault_Go/internal/logger"
	"github.com/osse101/RecipeVault_Go/internal/metrics"
	"github.com/osse101/RecipeVault_Go/internal/repository"
)

// OCRClient extracts text from recipe image bytes. It is fallible and
// non-deterministic; its output drives the parser but its internals are
// out of scope here.
type OCRClient interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// RecipeParser turns OCR text into a structured recipe
type RecipeParser interface {
	Parse(text string) (*domain.ParsedRecipe, error)
	ParserVersion() string
}

// Config tunes the runner's retry policy
type Config struct {
	MaxAttempts      int
	BackoffBase      time.Duration
	OperationTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = DefaultBackoffBase
	}
	if c.OperationTimeout <= 0 {
		c.OperationTimeout = DefaultOperationTimeout
	}
	return c
}

// Service defines the ingestion job runner operations
type Service interface {
	// Submit registers an ingestion job for an uploaded image. Idempotent
	// by content hash: a pending, running or succeeded job is returned
	// unchanged, and a failed job is moved back to pending for a fresh run.
	Submit(ctx context.Context, contentHash string) (*domain.IngestionJob, error)

	// Run executes one attempt of the job. It is the unit of work the
	// worker pool invokes. Processing failures are recorded on the job,
	// never returned; Run only errors when job state itself cannot be
	// read or written. The returned job reflects the state this run left
	// it in; a nil job means the claim was lost and another run owns the
	// job's outcome.
	Run(ctx context.Context, jobID uuid.UUID) (*domain.IngestionJob, error)

	// Status returns the job's current state
	Status(ctx context.Context, jobID uuid.UUID) (*domain.IngestionJob, error)
}

type service struct {
	jobs    repository.JobStore
	images  repository.ObjectStore
	recipes repository.RecipeStore
	ocr     OCRClient
	parser  RecipeParser
	cfg     Config
}

// NewService creates a new ingestion runner
func NewService(jobs repository.JobStore, images repository.ObjectStore, recipes repository.RecipeStore, ocr OCRClient, parser RecipeParser, cfg Config) Service {
	return &service{
		jobs:    jobs,
		images:  images,
		recipes: recipes,
		ocr:     ocr,
		parser:  parser,
		cfg:     cfg.withDefaults(),
	}
}

func (s *service) Submit(ctx context.Context, contentHash string) (*domain.IngestionJob, error) {
	log := logger.FromContext(ctx)

	existing, err := s.jobs.GetByContentHash(ctx, contentHash)
	if err != nil {
		return nil, fmt.Errorf("failed to look up job by content hash: %w", err)
	}

	if existing != nil {
		if existing.Status != domain.JobStatusFailed {
			log.Info(LogMsgJobAlreadyTracked, "content_hash", contentHash, "job_id", existing.JobID, "status", existing.Status)
			return existing, nil
		}

		// Explicit resubmission of a failed job
		job, ok, err := s.jobs.Transition(ctx, existing.JobID, []domain.JobStatus{domain.JobStatusFailed}, domain.JobStatusPending)
		if err != nil {
			return nil, fmt.Errorf("failed to resubmit job: %w", err)
		}
		if ok {
			job.NextRunAt = time.Now().UTC()
			if err := s.jobs.Update(ctx, job); err != nil {
				return nil, fmt.Errorf("failed to update resubmitted job: %w", err)
			}
			log.Info(LogMsgJobResubmitted, "content_hash", contentHash, "job_id", job.JobID, "attempts", job.Attempts)
		}
		return job, nil
	}

	now := time.Now().UTC()
	job := &domain.IngestionJob{
		JobID:       uuid.New(),
		ContentHash: contentHash,
		Status:      domain.JobStatusPending,
		NextRunAt:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	metrics.IngestionJobsSubmitted.Inc()
	log.Info(LogMsgJobSubmitted, "content_hash", contentHash, "job_id", job.JobID)
	return job, nil
}

func (s *service) Status(ctx context.Context, jobID uuid.UUID) (*domain.IngestionJob, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}
	return job, nil
}

func (s *service) Run(ctx context.Context, jobID uuid.UUID) (*domain.IngestionJob, error) {
	log := logger.FromContext(ctx).With("job_id", jobID)

	job, claimed, err := s.jobs.Transition(ctx, jobID, []domain.JobStatus{domain.JobStatusPending}, domain.JobStatusRunning)
	if err != nil {
		return nil, fmt.Errorf("failed to claim job: %w", err)
	}
	if !claimed {
		// Another worker won the race, or the job already finished.
		// Losing is not an error.
		log.Info(LogMsgJobClaimLost, "status", job.Status)
		return nil, nil
	}

	metrics.IngestionJobsStarted.Inc()

	// Rerun check first: output persistence is write-once per
	// (content hash, parser version), and checking before OCR keeps
	// reruns cheap and deterministic
	existing, err := s.recipes.GetByKey(ctx, job.ContentHash, s.parser.ParserVersion())
	if err != nil {
		return job, s.recordFailure(ctx, job, fmt.Errorf("failed to check existing output: %w", err), false)
	}
	if existing != nil {
		log.Info(LogMsgJobOutputExists, "recipe_id", existing.RecipeID)
		return job, s.markSucceeded(ctx, job)
	}

	recipe, err := s.process(ctx, job)
	if err != nil {
		terminal := errors.Is(err, domain.ErrEmptyDocument)
		if terminal {
			log.Warn(LogMsgJobEmptyDocument, "content_hash", job.ContentHash)
		}
		return job, s.recordFailure(ctx, job, err, terminal)
	}

	if err := s.recipes.Put(ctx, recipe); err != nil {
		// A concurrent rerun already wrote identical output; not a failure
		if !errors.Is(err, domain.ErrDuplicateRecipe) {
			return job, s.recordFailure(ctx, job, fmt.Errorf("failed to persist recipe: %w", err), false)
		}
	}

	log.Info(LogMsgJobSucceeded, "recipe_id", recipe.RecipeID, "ingredients", len(recipe.Ingredients))
	return job, s.markSucceeded(ctx, job)
}

// process runs the fetch -> OCR -> parse pipeline for one attempt
func (s *service) process(ctx context.Context, job *domain.IngestionJob) (*domain.ParsedRecipe, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.cfg.OperationTimeout)
	defer cancel()

	// The input store is content-addressed; the hash is the ref
	image, err := s.images.Get(opCtx, job.ContentHash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}

	text, err := s.ocr.ExtractText(opCtx, image)
	if err != nil {
		return nil, fmt.Errorf("ocr extraction failed: %w", err)
	}

	parseStart := time.Now()
	recipe, err := s.parser.Parse(text)
	metrics.ParseDuration.Observe(time.Since(parseStart).Seconds())
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	recipe.RecipeID = uuid.NewString()
	recipe.SourceImageHash = job.ContentHash
	recipe.CreatedAt = time.Now().UTC()
	return recipe, nil
}

func (s *service) markSucceeded(ctx context.Context, job *domain.IngestionJob) error {
	_, ok, err := s.jobs.Transition(ctx, job.JobID, []domain.JobStatus{domain.JobStatusRunning}, domain.JobStatusSucceeded)
	if err != nil {
		return fmt.Errorf("failed to mark job succeeded: %w", err)
	}
	if ok {
		job.Status = domain.JobStatusSucceeded
		metrics.IngestionJobsSucceeded.Inc()
	}
	return nil
}

// recordFailure increments attempts, stores the error, and routes the job
// to Failed (terminal or out of attempts) or back to Pending with a
// backoff-delayed eligibility time. The processing error is reported
// through job status, not returned to the queue.
func (s *service) recordFailure(ctx context.Context, job *domain.IngestionJob, procErr error, terminal bool) error {
	log := logger.FromContext(ctx).With("job_id", job.JobID)

	job.Attempts++
	job.LastError = procErr.Error()

	exhausted := job.Attempts >= s.cfg.MaxAttempts
	if terminal || exhausted {
		if err := s.jobs.Update(ctx, job); err != nil {
			return fmt.Errorf("failed to record job failure: %w", err)
		}
		if _, _, err := s.jobs.Transition(ctx, job.JobID, []domain.JobStatus{domain.JobStatusRunning}, domain.JobStatusFailed); err != nil {
			return fmt.Errorf("failed to mark job failed: %w", err)
		}
		job.Status = domain.JobStatusFailed
		metrics.IngestionJobsFailed.Inc()
		log.Error(LogMsgJobFailedTerminal, "error", procErr, "attempts", job.Attempts, "terminal", terminal)
		return nil
	}

	delay := nextDelay(s.cfg.BackoffBase, job.Attempts)
	job.NextRunAt = time.Now().UTC().Add(delay)
	if err := s.jobs.Update(ctx, job); err != nil {
		return fmt.Errorf("failed to record job retry: %w", err)
	}
	if _, _, err := s.jobs.Transition(ctx, job.JobID, []domain.JobStatus{domain.JobStatusRunning}, domain.JobStatusPending); err != nil {
		return fmt.Errorf("failed to reschedule job: %w", err)
	}
	job.Status = domain.JobStatusPending
	metrics.IngestionJobRetries.Inc()
	log.Warn(LogMsgJobRetryScheduled, "error", procErr, "attempts", job.Attempts, "next_run_in", delay)
	return nil
}

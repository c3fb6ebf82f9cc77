// Package orchestrator is the facade the transport layer talks to. It owns
// the upload-to-job flow, fans ingestion work out to the pool, fronts
// recipe reads with a cache, and pairs the cooking engine with event
// publication.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/RecipeVault_Go/internal/cooking"
	"github.com/osse101/RecipeVault_Go/internal/domain"
	"github.com/osse101/RecipeVault_Go/internal/event"
	"github.com/osse101/RecipeVault_Go/internal/ingest"
	"github.com/osse101/RecipeVault_Go/internal/logger"
	"github.com/osse101/RecipeVault_Go/internal/parser"
	"github.com/osse101/RecipeVault_Go/internal/repository"
	"github.com/osse101/RecipeVault_Go/internal/worker"
)

// Log messages
const (
	LogMsgImageAccepted    = "Image accepted for ingestion"
	LogMsgEnqueueRejected  = "Worker queue full, job left for retry poller"
	LogMsgTerminalFailure  = "Ingestion job failed terminally"
	LogMsgEventPublishSkip = "Event publish failed"
)

// Default cache tuning
const (
	DefaultRecipeCacheSize = 256
	DefaultRecipeCacheTTL  = 5 * time.Minute
)

// BlobStore accepts uploaded image bytes and returns their content hash
type BlobStore interface {
	Put(ctx context.Context, data []byte) (string, error)
}

// Service is the application facade
type Service interface {
	// SubmitImage stores the uploaded image, registers an ingestion job
	// for it, and hands the first attempt to the worker pool
	SubmitImage(ctx context.Context, image []byte) (*domain.IngestionJob, error)

	// JobStatus returns the current state of an ingestion job
	JobStatus(ctx context.Context, jobID uuid.UUID) (*domain.IngestionJob, error)

	// GetRecipe returns a parsed recipe by id, served from cache when warm
	GetRecipe(ctx context.Context, recipeID string) (*domain.ParsedRecipe, error)

	// Cook computes a plan for recipe x pantry x scale
	Cook(ctx context.Context, recipeID, pantryID string, scale domain.Fraction, subs domain.SubstitutionMap) (*domain.CookPlan, error)

	// CommitCook applies the plan's depletion to the pantry
	CommitCook(ctx context.Context, plan *domain.CookPlan) error

	// Run executes one ingestion attempt and publishes terminal outcome
	// events. It is what the pool and retry poller invoke.
	Run(ctx context.Context, jobID uuid.UUID) error
}

// Config tunes the orchestrator
type Config struct {
	RecipeCacheSize int
	RecipeCacheTTL  time.Duration
}

func (c Config) withDefaults() Config {
	if c.RecipeCacheSize <= 0 {
		c.RecipeCacheSize = DefaultRecipeCacheSize
	}
	if c.RecipeCacheTTL <= 0 {
		c.RecipeCacheTTL = DefaultRecipeCacheTTL
	}
	return c
}

type service struct {
	ingestion ingest.Service
	cooking   cooking.Service
	blobs     BlobStore
	recipes   repository.RecipeStore
	pantries  repository.PantryStore
	pool      *worker.Pool
	bus       event.Bus
	cache     *recipeCache
}

// NewService creates the application facade
func NewService(ingestion ingest.Service, cookingSvc cooking.Service, blobs BlobStore, recipes repository.RecipeStore, pantries repository.PantryStore, pool *worker.Pool, bus event.Bus, cfg Config) Service {
	cfg = cfg.withDefaults()
	return &service{
		ingestion: ingestion,
		cooking:   cookingSvc,
		blobs:     blobs,
		recipes:   recipes,
		pantries:  pantries,
		pool:      pool,
		bus:       bus,
		cache:     newRecipeCache(cfg.RecipeCacheSize, cfg.RecipeCacheTTL),
	}
}

func (s *service) SubmitImage(ctx context.Context, image []byte) (*domain.IngestionJob, error) {
	log := logger.FromContext(ctx)

	contentHash, err := s.blobs.Put(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	job, err := s.ingestion.Submit(ctx, contentHash)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewJobSubmittedEvent(job.JobID.String(), contentHash))
	log.Info(LogMsgImageAccepted, "content_hash", contentHash, "job_id", job.JobID, "status", job.Status)

	// First attempt goes straight to the pool. If the queue is full the
	// retry poller picks the job up from its NextRunAt.
	if job.Status == domain.JobStatusPending {
		jobID := job.JobID
		if !s.pool.Enqueue(worker.JobFunc(func(ctx context.Context) error {
			return s.Run(ctx, jobID)
		})) {
			log.Warn(LogMsgEnqueueRejected, "job_id", jobID)
		}
	}

	return job, nil
}

func (s *service) JobStatus(ctx context.Context, jobID uuid.UUID) (*domain.IngestionJob, error) {
	return s.ingestion.Status(ctx, jobID)
}

func (s *service) GetRecipe(ctx context.Context, recipeID string) (*domain.ParsedRecipe, error) {
	if recipe, ok := s.cache.Get(recipeID); ok {
		return recipe, nil
	}

	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, recipeID)
	}

	s.cache.Set(recipeID, recipe)
	return recipe, nil
}

func (s *service) Cook(ctx context.Context, recipeID, pantryID string, scale domain.Fraction, subs domain.SubstitutionMap) (*domain.CookPlan, error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	pantry, err := s.pantries.Read(ctx, pantryID)
	if err != nil {
		return nil, fmt.Errorf("failed to read pantry: %w", err)
	}
	if pantry == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPantryNotFound, pantryID)
	}

	return s.cooking.Cook(ctx, recipe, pantry, scale, subs)
}

func (s *service) CommitCook(ctx context.Context, plan *domain.CookPlan) error {
	if err := s.cooking.Commit(ctx, plan); err != nil {
		return err
	}

	s.publish(ctx, event.NewCookCommittedEvent(plan.RecipeID, plan.PantryID, plan.Scale.String()))
	return nil
}

func (s *service) Run(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.ingestion.Run(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		// Claim lost: another run owns this job and its outcome events
		return nil
	}

	// Terminal outcomes become events; intermediate retries stay internal.
	// The switch sees the state this run produced, so a stale rerun of a
	// finished job never republishes its outcome.
	switch job.Status {
	case domain.JobStatusSucceeded:
		recipeID := ""
		if recipe, err := s.recipes.GetByKey(ctx, job.ContentHash, parser.Version); err == nil && recipe != nil {
			recipeID = recipe.RecipeID
		}
		s.publish(ctx, event.NewJobSucceededEvent(job.JobID.String(), job.ContentHash, recipeID))
	case domain.JobStatusFailed:
		logger.FromContext(ctx).Warn(LogMsgTerminalFailure, "job_id", job.JobID, "attempts", job.Attempts)
		s.publish(ctx, event.NewJobFailedEvent(job.JobID.String(), job.ContentHash, job.Attempts, job.LastError))
	}
	return nil
}

// publish is fire-and-forget; event delivery never fails a core operation
func (s *service) publish(ctx context.Context, ev event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishSkip, "event_type", ev.Type, "error", err)
	}
}

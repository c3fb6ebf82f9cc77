package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/RecipeVault_Go/internal/concurrency"
	"github.com/osse101/RecipeVault_Go/internal/config"
	"github.com/osse101/RecipeVault_Go/internal/cooking"
	"github.com/osse101/RecipeVault_Go/internal/database"
	"github.com/osse101/RecipeVault_Go/internal/database/postgres"
	"github.com/osse101/RecipeVault_Go/internal/event"
	"github.com/osse101/RecipeVault_Go/internal/ingest"
	"github.com/osse101/RecipeVault_Go/internal/ocr"
	"github.com/osse101/RecipeVault_Go/internal/orchestrator"
	"github.com/osse101/RecipeVault_Go/internal/parser"
	"github.com/osse101/RecipeVault_Go/internal/scheduler"
	"github.com/osse101/RecipeVault_Go/internal/server"
	"github.com/osse101/RecipeVault_Go/internal/storage"
	"github.com/osse101/RecipeVault_Go/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}
	for _, w := range warnings {
		slog.Warn("Environment warning", "warning", w)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), 10, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	blobs, err := storage.NewFileStore(cfg.ObjectStoreDir)
	if err != nil {
		log.Fatalf("Failed to open object store: %v", err)
	}

	deadLetter, err := event.NewDeadLetterWriter(cfg.DeadLetterPath)
	if err != nil {
		log.Fatalf("Failed to open dead letter file: %v", err)
	}
	bus := event.NewResilientPublisher(event.NewMemoryBus(), event.ResilientConfig{
		DeadLetter: deadLetter,
	})

	jobs := postgres.NewJobRepository(dbPool)
	recipes := postgres.NewRecipeRepository(dbPool)
	pantries := postgres.NewPantryRepository(dbPool)

	ocrClient := ocr.NewClient(cfg.OCRBaseURL, cfg.OCRTimeout)
	recipeParser := parser.New()

	ingestSvc := ingest.NewService(jobs, blobs, recipes, ocrClient, recipeParser, ingest.Config{
		MaxAttempts:      cfg.JobMaxAttempts,
		BackoffBase:      cfg.JobBackoffBase,
		OperationTimeout: cfg.OperationTimeout,
	})
	cookingSvc := cooking.NewService(pantries, concurrency.NewLockManager())

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()
	defer pool.Stop()

	app := orchestrator.NewService(ingestSvc, cookingSvc, blobs, recipes, pantries, pool, bus, orchestrator.Config{
		RecipeCacheSize: cfg.RecipeCacheSize,
		RecipeCacheTTL:  cfg.RecipeCacheTTL,
	})

	// The retry poller turns NextRunAt timestamps back into pool work
	retry := worker.NewRetryWorker(jobs, app, pool, cfg.RetryBatchSize)
	sched := scheduler.New(pool)
	sched.Schedule(cfg.RetryPollEvery, retry)
	defer sched.Stop()

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, dbPool, app)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

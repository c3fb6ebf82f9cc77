package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/RecipeVault_Go/internal/logger"
	"github.com/osse101/RecipeVault_Go/internal/orchestrator"
)

// SubmitImageResponse is returned when an image is accepted for ingestion
type SubmitImageResponse struct {
	JobID       uuid.UUID `json:"job_id"`
	ContentHash string    `json:"content_hash"`
	Status      string    `json:"status"`
}

// JobStatusResponse describes the current state of an ingestion job
type JobStatusResponse struct {
	JobID       uuid.UUID `json:"job_id"`
	ContentHash string    `json:"content_hash"`
	Status      string    `json:"status"`
	Attempts    int       `json:"attempts"`
	LastError   string    `json:"last_error,omitempty"`
	NextRunAt   time.Time `json:"next_run_at"`
}

// HandleSubmitImage accepts raw image bytes and registers an ingestion job
// @Summary Submit a recipe photo for ingestion
// @Description Stores the image and starts OCR-to-recipe processing. Re-uploading the same photo returns the existing job.
// @Tags ingest
// @Accept octet-stream
// @Produce json
// @Success 202 {object} SubmitImageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ingest [post]
func HandleSubmitImage(svc orchestrator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		image, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read image upload", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if len(image) == 0 {
			respondError(w, http.StatusBadRequest, ErrMsgEmptyImageUpload)
			return
		}

		job, err := svc.SubmitImage(r.Context(), image)
		if err != nil {
			log.Error("Failed to submit image", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusAccepted, SubmitImageResponse{
			JobID:       job.JobID,
			ContentHash: job.ContentHash,
			Status:      string(job.Status),
		})
	}
}

// HandleGetJob returns the status of an ingestion job
// @Summary Get ingestion job status
// @Description Returns the current lifecycle state of a job, including retry bookkeeping
// @Tags ingest
// @Produce json
// @Param jobID path string true "Job ID"
// @Success 200 {object} JobStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /jobs/{jobID} [get]
func HandleGetJob(svc orchestrator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidJobID)
			return
		}

		job, err := svc.JobStatus(r.Context(), jobID)
		if err != nil {
			log.Warn("Failed to get job", "job_id", jobID, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, JobStatusResponse{
			JobID:       job.JobID,
			ContentHash: job.ContentHash,
			Status:      string(job.Status),
			Attempts:    job.Attempts,
			LastError:   job.LastError,
			NextRunAt:   job.NextRunAt,
		})
	}
}

// HandleGetRecipe returns a parsed recipe by id
// @Summary Get a parsed recipe
// @Description Returns the structured recipe produced by ingestion
// @Tags recipes
// @Produce json
// @Param recipeID path string true "Recipe ID"
// @Success 200 {object} domain.ParsedRecipe
// @Failure 404 {object} ErrorResponse
// @Router /recipes/{recipeID} [get]
func HandleGetRecipe(svc orchestrator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		recipeID := chi.URLParam(r, "recipeID")

		recipe, err := svc.GetRecipe(r.Context(), recipeID)
		if err != nil {
			log.Warn("Failed to get recipe", "recipe_id", recipeID, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, recipe)
	}
}

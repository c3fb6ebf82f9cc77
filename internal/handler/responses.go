package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Resources addressed by id map to 404, caller mistakes to 400, and commit
// contention to 409 so clients can refresh their plan and retry.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, ErrMsgJobNotFoundError
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound, ErrMsgRecipeNotFoundError
	case errors.Is(err, domain.ErrPantryNotFound):
		return http.StatusNotFound, ErrMsgPantryNotFoundError
	case errors.Is(err, domain.ErrImageNotFound):
		return http.StatusNotFound, ErrMsgImageNotFoundError
	case errors.Is(err, domain.ErrInvalidScale):
		return http.StatusBadRequest, ErrMsgInvalidScaleError
	case errors.Is(err, domain.ErrInvalidConversionFactor):
		return http.StatusBadRequest, ErrMsgInvalidFactorError
	case errors.Is(err, domain.ErrEmptyRecipe):
		return http.StatusBadRequest, ErrMsgEmptyRecipeError
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest, domain.ErrMsgEmptyDocument
	case errors.Is(err, domain.ErrIncompatibleUnit):
		return http.StatusBadRequest, ErrMsgIncompatibleError
	case errors.Is(err, domain.ErrUnknownUnit):
		return http.StatusBadRequest, domain.ErrMsgUnknownUnit
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, ErrMsgInsufficientError
	case errors.Is(err, domain.ErrDuplicateRecipe):
		return http.StatusConflict, domain.ErrMsgDuplicateRecipe
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

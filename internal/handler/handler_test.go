package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// stubService is a handwritten fake of the orchestrator facade. Each handler
// test wires only the functions it exercises.
type stubService struct {
	submitFn    func(ctx context.Context, image []byte) (*domain.IngestionJob, error)
	jobStatusFn func(ctx context.Context, jobID uuid.UUID) (*domain.IngestionJob, error)
	getRecipeFn func(ctx context.Context, recipeID string) (*domain.ParsedRecipe, error)
	cookFn      func(ctx context.Context, recipeID, pantryID string, scale domain.Fraction, subs domain.SubstitutionMap) (*domain.CookPlan, error)
	commitFn    func(ctx context.Context, plan *domain.CookPlan) error
	runFn       func(ctx context.Context, jobID uuid.UUID) error
}

func (s *stubService) SubmitImage(ctx context.Context, image []byte) (*domain.IngestionJob, error) {
	return s.submitFn(ctx, image)
}

func (s *stubService) JobStatus(ctx context.Context, jobID uuid.UUID) (*domain.IngestionJob, error) {
	return s.jobStatusFn(ctx, jobID)
}

func (s *stubService) GetRecipe(ctx context.Context, recipeID string) (*domain.ParsedRecipe, error) {
	return s.getRecipeFn(ctx, recipeID)
}

func (s *stubService) Cook(ctx context.Context, recipeID, pantryID string, scale domain.Fraction, subs domain.SubstitutionMap) (*domain.CookPlan, error) {
	return s.cookFn(ctx, recipeID, pantryID, scale, subs)
}

func (s *stubService) CommitCook(ctx context.Context, plan *domain.CookPlan) error {
	return s.commitFn(ctx, plan)
}

func (s *stubService) Run(ctx context.Context, jobID uuid.UUID) error {
	return s.runFn(ctx, jobID)
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"nil error", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"job not found", domain.ErrJobNotFound, http.StatusNotFound, ErrMsgJobNotFoundError},
		{"recipe not found", domain.ErrRecipeNotFound, http.StatusNotFound, ErrMsgRecipeNotFoundError},
		{"pantry not found", domain.ErrPantryNotFound, http.StatusNotFound, ErrMsgPantryNotFoundError},
		{"invalid scale", domain.ErrInvalidScale, http.StatusBadRequest, ErrMsgInvalidScaleError},
		{"invalid conversion factor", domain.ErrInvalidConversionFactor, http.StatusBadRequest, ErrMsgInvalidFactorError},
		{"empty recipe", domain.ErrEmptyRecipe, http.StatusBadRequest, ErrMsgEmptyRecipeError},
		{"incompatible unit", domain.ErrIncompatibleUnit, http.StatusBadRequest, ErrMsgIncompatibleError},
		{"insufficient stock", domain.ErrInsufficientStock, http.StatusConflict, ErrMsgInsufficientError},
		{"wrapped domain error", fmt.Errorf("commit failed: %w", domain.ErrInsufficientStock), http.StatusConflict, ErrMsgInsufficientError},
		{"unrecognized error", errors.New("disk exploded"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedMsg, msg)
		})
	}
}

func TestValidateFraction(t *testing.T) {
	InitValidator()

	type scaled struct {
		Scale string `validate:"required,fraction"`
	}

	assert.NoError(t, GetValidator().ValidateStruct(scaled{Scale: "3/2"}))
	assert.NoError(t, GetValidator().ValidateStruct(scaled{Scale: "2"}))
	assert.NoError(t, GetValidator().ValidateStruct(scaled{Scale: "1.5"}))
	assert.Error(t, GetValidator().ValidateStruct(scaled{Scale: "three halves"}))
	assert.Error(t, GetValidator().ValidateStruct(scaled{Scale: "1/0x"}))
	assert.Error(t, GetValidator().ValidateStruct(scaled{Scale: ""}))
}

func TestFormatValidationError(t *testing.T) {
	InitValidator()

	type req struct {
		RecipeID string `validate:"required"`
		Scale    string `validate:"required,fraction"`
	}

	err := GetValidator().ValidateStruct(req{Scale: "nope"})
	formatted := FormatValidationError(err)
	assert.Equal(t, "This field is required", formatted["recipeid"])
	assert.Equal(t, "Must be a number or fraction like 3/2", formatted["scale"])

	assert.Nil(t, FormatValidationError(nil))

	generic := FormatValidationError(errors.New("not a validation error"))
	assert.Equal(t, "Invalid request format", generic["error"])
}

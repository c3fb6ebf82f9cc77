package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/RecipeVault_Go/internal/domain"
	"github.com/osse101/RecipeVault_Go/internal/logger"
	"github.com/osse101/RecipeVault_Go/internal/orchestrator"
)

// SubstitutionRequest swaps one ingredient for another at a conversion ratio
type SubstitutionRequest struct {
	To               string `json:"to" validate:"required,max=100"`
	ConversionFactor string `json:"conversion_factor" validate:"required,fraction"`
}

// CookRequest asks for a scaled cook plan of a recipe against a pantry.
// Scale and conversion factors are fraction strings like "3/2" or "1.5" so
// quantities stay exact over the wire.
type CookRequest struct {
	RecipeID      string                         `json:"recipe_id" validate:"required,max=100"`
	PantryID      string                         `json:"pantry_id" validate:"required,max=100"`
	Scale         string                         `json:"scale" validate:"required,fraction"`
	Substitutions map[string]SubstitutionRequest `json:"substitutions" validate:"omitempty,dive"`
}

// decodeCookRequest validates the request and converts its fraction strings
func decodeCookRequest(req CookRequest) (domain.Fraction, domain.SubstitutionMap, error) {
	scale, err := domain.ParseFraction(req.Scale)
	if err != nil {
		return domain.Fraction{}, nil, fmt.Errorf("%s: %w", ErrMsgInvalidScale, err)
	}

	subs := make(domain.SubstitutionMap, len(req.Substitutions))
	for name, sub := range req.Substitutions {
		factor, err := domain.ParseFraction(sub.ConversionFactor)
		if err != nil {
			return domain.Fraction{}, nil, fmt.Errorf("%s: %w", ErrMsgInvalidFactor, err)
		}
		subs[name] = domain.Substitution{To: sub.To, ConversionFactor: factor}
	}
	return scale, subs, nil
}

// HandleCook computes a cook plan without touching pantry stock
// @Summary Compute a cook plan
// @Description Scales the recipe, applies substitutions, and checks each ingredient against pantry stock
// @Tags cook
// @Accept json
// @Produce json
// @Param request body CookRequest true "Cook parameters"
// @Success 200 {object} domain.CookPlan
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cook [post]
func HandleCook(svc orchestrator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode cook request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid cook request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", FormatValidationError(err)))
			return
		}

		scale, subs, err := decodeCookRequest(req)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		plan, err := svc.Cook(r.Context(), req.RecipeID, req.PantryID, scale, subs)
		if err != nil {
			log.Error("Failed to compute cook plan", "error", err, "recipe_id", req.RecipeID, "pantry_id", req.PantryID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Cook plan computed", "recipe_id", req.RecipeID, "pantry_id", req.PantryID, "feasible", plan.Feasible)
		respondJSON(w, http.StatusOK, plan)
	}
}

// HandleCommitCook recomputes the plan and applies its depletion to the pantry.
// The plan is recomputed server side rather than trusted from the client, so
// a stale or hand-edited plan can never deplete stock it did not earn.
// @Summary Commit a cook
// @Description Computes the plan for the given parameters and deducts the required quantities from pantry stock
// @Tags cook
// @Accept json
// @Produce json
// @Param request body CookRequest true "Cook parameters"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /cook/commit [post]
func HandleCommitCook(svc orchestrator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode commit request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid commit request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", FormatValidationError(err)))
			return
		}

		scale, subs, err := decodeCookRequest(req)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		plan, err := svc.Cook(r.Context(), req.RecipeID, req.PantryID, scale, subs)
		if err != nil {
			log.Error("Failed to compute cook plan", "error", err, "recipe_id", req.RecipeID, "pantry_id", req.PantryID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		if err := svc.CommitCook(r.Context(), plan); err != nil {
			log.Warn("Failed to commit cook", "error", err, "recipe_id", req.RecipeID, "pantry_id", req.PantryID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Cook committed", "recipe_id", req.RecipeID, "pantry_id", req.PantryID, "scale", scale.String())
		respondJSON(w, http.StatusOK, DataResponse{Message: "Cook committed", Data: plan})
	}
}

// Package cooking computes scaled, substitution-aware ingredient plans
// against a pantry snapshot, and commits the resulting depletion. Cook is
// pure; Commit is the only writer a pantry ever sees.
package cooking

import (
	"context"
	"fmt"
	"strconv"

	"github.com/osse101/RecipeVault_Go/internal/concurrency"
	"github.com/osse101/RecipeVault_Go/internal/domain"
	"github.com/osse101/RecipeVault_Go/internal/logger"
	"github.com/osse101/RecipeVault_Go/internal/metrics"
	"github.com/osse101/RecipeVault_Go/internal/normalize"
	"github.com/osse101/RecipeVault_Go/internal/repository"
)

// Service defines the cooking engine operations
type Service interface {
	// Cook computes a CookPlan for the recipe at the given scale against
	// the pantry snapshot. Pure and side-effect-free; always returns a
	// plan (with per-line satisfied flags) unless the request itself is
	// structurally invalid.
	Cook(ctx context.Context, recipe *domain.ParsedRecipe, pantry *domain.PantryState, scale domain.Fraction, subs domain.SubstitutionMap) (*domain.CookPlan, error)

	// Commit deducts every satisfied, quantity-bearing line of the plan
	// from the pantry's stock, all-or-nothing. Serialized per pantry.
	Commit(ctx context.Context, plan *domain.CookPlan) error
}

type service struct {
	pantries repository.PantryStore
	locks    *concurrency.LockManager
}

// NewService creates a new cooking engine
func NewService(pantries repository.PantryStore, locks *concurrency.LockManager) Service {
	return &service{
		pantries: pantries,
		locks:    locks,
	}
}

func (s *service) Cook(ctx context.Context, recipe *domain.ParsedRecipe, pantry *domain.PantryState, scale domain.Fraction, subs domain.SubstitutionMap) (*domain.CookPlan, error) {
	log := logger.FromContext(ctx)

	if !scale.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", domain.ErrInvalidScale, scale)
	}
	for name, sub := range subs {
		if !sub.ConversionFactor.IsPositive() {
			return nil, fmt.Errorf("%w: %s -> %s at %s", domain.ErrInvalidConversionFactor, name, sub.To, sub.ConversionFactor)
		}
	}
	if len(recipe.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: recipe %s", domain.ErrEmptyRecipe, recipe.RecipeID)
	}

	plan := &domain.CookPlan{
		RecipeID: recipe.RecipeID,
		PantryID: pantry.PantryID,
		Scale:    scale,
		Lines:    make([]domain.CookPlanLine, 0, len(recipe.Ingredients)),
		Feasible: true,
	}

	for _, ingredient := range recipe.Ingredients {
		line := s.resolveLine(ingredient, pantry, scale, subs, plan)
		if !line.Satisfied {
			plan.Feasible = false
		}
		plan.Lines = append(plan.Lines, line)
	}

	metrics.CooksTotal.WithLabelValues(strconv.FormatBool(plan.Feasible)).Inc()
	log.Info("Cook plan computed", "recipe_id", recipe.RecipeID, "pantry_id", pantry.PantryID,
		"scale", scale.String(), "feasible", plan.Feasible, "lines", len(plan.Lines))
	return plan, nil
}

// resolveLine computes one plan line: scale the quantity, apply any
// substitution, and check pantry stock in the line's unit. Notes about
// noteworthy conditions are appended to the plan as they are found.
func (s *service) resolveLine(ingredient domain.IngredientLine, pantry *domain.PantryState, scale domain.Fraction, subs domain.SubstitutionMap, plan *domain.CookPlan) domain.CookPlanLine {
	name := normalize.CanonicalizeName(ingredient.Name)

	// Lines without a measurable amount ("salt to taste") never block
	// feasibility
	if !ingredient.HasQuantity() {
		return domain.CookPlanLine{
			IngredientName: name,
			Satisfied:      true,
		}
	}

	required := ingredient.Quantity.Mul(scale)
	unit := *ingredient.Unit
	substitutedFrom := ""

	if sub, ok := subs[name]; ok {
		substitutedFrom = name
		name = normalize.CanonicalizeName(sub.To)
		required = required.Mul(sub.ConversionFactor)
		plan.Notes = append(plan.Notes, fmt.Sprintf("substituted %s for %s at ratio %s", name, substitutedFrom, sub.ConversionFactor))
	}

	line := domain.CookPlanLine{
		IngredientName:   name,
		RequiredQuantity: &required,
		Unit:             &unit,
		SubstitutedFrom:  substitutedFrom,
	}

	stock, ok := pantry.Stock[name]
	if !ok {
		plan.Notes = append(plan.Notes, fmt.Sprintf("missing ingredient: %s", name))
		return line
	}

	available, err := normalize.Convert(stock.Quantity, stock.Unit, unit)
	if err != nil {
		// Cross-dimension stock is a data defect; the line stays
		// unsatisfied and the plan says why
		plan.Notes = append(plan.Notes, fmt.Sprintf("cannot compare stock for %s: %v", name, err))
		return line
	}

	line.Available = available
	line.Satisfied = available.Cmp(required) >= 0
	if !line.Satisfied {
		plan.Notes = append(plan.Notes, fmt.Sprintf("short on %s: need %s %s, have %s %s", name, required, unit, available, unit))
	}
	return line
}

func (s *service) Commit(ctx context.Context, plan *domain.CookPlan) error {
	log := logger.FromContext(ctx)

	// Serialize commits per pantry; concurrent cooks against different
	// pantries do not contend
	lock := s.locks.GetLock(plan.PantryID)
	lock.Lock()
	defer lock.Unlock()

	pantry, err := s.pantries.Read(ctx, plan.PantryID)
	if err != nil {
		return fmt.Errorf("failed to read pantry: %w", err)
	}
	if pantry == nil {
		return fmt.Errorf("%w: %s", domain.ErrPantryNotFound, plan.PantryID)
	}

	// Two passes: validate everything against current stock, then deduct.
	// Stock may have moved since the plan was computed, so the plan's
	// satisfied flags are advisory here, not trusted.
	updated := pantry.Clone()
	for _, line := range plan.Lines {
		if line.RequiredQuantity == nil || !line.Satisfied {
			continue
		}

		stock, ok := updated.Stock[line.IngredientName]
		if !ok {
			metrics.CookCommitConflicts.Inc()
			return fmt.Errorf("%w: %s not in pantry", domain.ErrInsufficientStock, line.IngredientName)
		}

		required, err := normalize.Convert(*line.RequiredQuantity, *line.Unit, stock.Unit)
		if err != nil {
			return fmt.Errorf("cannot deduct %s: %w", line.IngredientName, err)
		}

		// A commit only ever depletes. A plan line demanding a negative
		// amount would credit stock instead, so it is rejected outright.
		if required.IsNegative() {
			return fmt.Errorf("%w: negative requirement for %s", domain.ErrInvalidConversionFactor, line.IngredientName)
		}

		remaining := stock.Quantity.Sub(required)
		if remaining.IsNegative() {
			metrics.CookCommitConflicts.Inc()
			return fmt.Errorf("%w: %s would go negative", domain.ErrInsufficientStock, line.IngredientName)
		}
		updated.Stock[line.IngredientName] = domain.StockEntry{Quantity: remaining, Unit: stock.Unit}
	}

	if err := s.pantries.Write(ctx, updated); err != nil {
		return fmt.Errorf("failed to write pantry: %w", err)
	}

	metrics.CookCommits.Inc()
	log.Info("Cook plan committed", "recipe_id", plan.RecipeID, "pantry_id", plan.PantryID, "scale", plan.Scale.String())
	return nil
}

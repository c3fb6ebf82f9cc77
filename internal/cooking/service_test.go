package cooking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeVault_Go/internal/concurrency"
	"github.com/osse101/RecipeVault_Go/internal/domain"
	"github.com/osse101/RecipeVault_Go/internal/repository/memory"
)

func frac(num, den int64) domain.Fraction {
	return domain.NewFraction(num, den)
}

func fracPtr(num, den int64) *domain.Fraction {
	f := frac(num, den)
	return &f
}

func unitPtr(u domain.Unit) *domain.Unit {
	return &u
}

func testRecipe() *domain.ParsedRecipe {
	return &domain.ParsedRecipe{
		RecipeID: "recipe-1",
		Title:    "Simple Bread",
		Ingredients: []domain.IngredientLine{
			{RawText: "1 cup flour", Quantity: fracPtr(1, 1), Unit: unitPtr(domain.UnitCup), Name: "flour", Confidence: 1.0},
			{RawText: "5 tsp salt", Quantity: fracPtr(5, 1), Unit: unitPtr(domain.UnitTeaspoon), Name: "salt", Confidence: 1.0},
		},
		Steps: []string{"Mix and bake."},
	}
}

func testPantry() *domain.PantryState {
	return &domain.PantryState{
		PantryID: "pantry-1",
		Stock: map[string]domain.StockEntry{
			"flour": {Quantity: frac(3, 1), Unit: domain.UnitCup},
			"salt":  {Quantity: frac(8, 1), Unit: domain.UnitTeaspoon},
		},
	}
}

func newTestService(t *testing.T, pantry *domain.PantryState) (Service, *memory.PantryStore) {
	t.Helper()
	pantries := memory.NewPantryStore()
	if pantry != nil {
		require.NoError(t, pantries.Write(context.Background(), pantry))
	}
	return NewService(pantries, concurrency.NewLockManager()), pantries
}

func TestCookScalesQuantitiesExactly(t *testing.T) {
	svc, _ := newTestService(t, testPantry())

	plan, err := svc.Cook(context.Background(), testRecipe(), testPantry(), frac(3, 2), nil)
	require.NoError(t, err)

	require.Len(t, plan.Lines, 2)
	assert.Equal(t, 0, plan.Lines[0].RequiredQuantity.Cmp(frac(3, 2)), "1 cup * 3/2")
	assert.Equal(t, 0, plan.Lines[1].RequiredQuantity.Cmp(frac(15, 2)), "5 tsp * 3/2")
}

func TestCookInfeasibleAtDoubleScale(t *testing.T) {
	// 2x needs 10 tsp salt but only 8 are stocked; flour is fine
	svc, _ := newTestService(t, testPantry())

	plan, err := svc.Cook(context.Background(), testRecipe(), testPantry(), frac(2, 1), nil)
	require.NoError(t, err)

	assert.False(t, plan.Feasible)
	assert.True(t, plan.Lines[0].Satisfied, "flour: need 2, have 3")
	assert.False(t, plan.Lines[1].Satisfied, "salt: need 10, have 8")
	assert.NotEmpty(t, plan.Notes)
}

func TestCookConvertsPantryUnits(t *testing.T) {
	pantry := &domain.PantryState{
		PantryID: "pantry-1",
		Stock: map[string]domain.StockEntry{
			// 480 ml is just over 2 cups
			"flour": {Quantity: frac(480, 1), Unit: domain.UnitMilliliter},
			"salt":  {Quantity: frac(8, 1), Unit: domain.UnitTeaspoon},
		},
	}
	svc, _ := newTestService(t, pantry)

	plan, err := svc.Cook(context.Background(), testRecipe(), pantry, frac(2, 1), nil)
	require.NoError(t, err)

	assert.True(t, plan.Lines[0].Satisfied, "480 ml covers 2 cups")
}

func TestCookIncompatibleStockUnit(t *testing.T) {
	pantry := testPantry()
	pantry.Stock["flour"] = domain.StockEntry{Quantity: frac(500, 1), Unit: domain.UnitGram}
	svc, _ := newTestService(t, pantry)

	plan, err := svc.Cook(context.Background(), testRecipe(), pantry, frac(1, 1), nil)
	require.NoError(t, err)

	assert.False(t, plan.Feasible)
	assert.False(t, plan.Lines[0].Satisfied, "grams cannot satisfy cups")
	assert.NotEmpty(t, plan.Notes)
}

func TestCookMissingIngredient(t *testing.T) {
	pantry := testPantry()
	delete(pantry.Stock, "salt")
	svc, _ := newTestService(t, pantry)

	plan, err := svc.Cook(context.Background(), testRecipe(), pantry, frac(1, 1), nil)
	require.NoError(t, err)

	assert.False(t, plan.Feasible)
	assert.False(t, plan.Lines[1].Satisfied)
	assert.True(t, plan.Lines[1].Available.IsZero())
}

func TestCookUnquantifiedLineAlwaysSatisfied(t *testing.T) {
	recipe := testRecipe()
	recipe.Ingredients = append(recipe.Ingredients, domain.IngredientLine{
		RawText: "pepper to taste", Name: "pepper to taste", Confidence: 0.6,
	})
	svc, _ := newTestService(t, testPantry())

	plan, err := svc.Cook(context.Background(), recipe, testPantry(), frac(1, 1), nil)
	require.NoError(t, err)

	require.Len(t, plan.Lines, 3)
	assert.True(t, plan.Lines[2].Satisfied)
	assert.Nil(t, plan.Lines[2].RequiredQuantity)
	assert.True(t, plan.Feasible)
}

func TestCookAppliesSubstitution(t *testing.T) {
	pantry := &domain.PantryState{
		PantryID: "pantry-1",
		Stock: map[string]domain.StockEntry{
			// no butter, plenty of oil
			"oil":  {Quantity: frac(2, 1), Unit: domain.UnitCup},
			"salt": {Quantity: frac(8, 1), Unit: domain.UnitTeaspoon},
		},
	}
	recipe := testRecipe()
	recipe.Ingredients[0] = domain.IngredientLine{
		RawText: "1 cup butter", Quantity: fracPtr(1, 1), Unit: unitPtr(domain.UnitCup), Name: "butter", Confidence: 1.0,
	}
	subs := domain.SubstitutionMap{
		"butter": {To: "oil", ConversionFactor: frac(3, 4)},
	}
	svc, _ := newTestService(t, pantry)

	plan, err := svc.Cook(context.Background(), recipe, pantry, frac(1, 1), subs)
	require.NoError(t, err)

	line := plan.Lines[0]
	assert.Equal(t, "oil", line.IngredientName)
	assert.Equal(t, "butter", line.SubstitutedFrom)
	assert.Equal(t, 0, line.RequiredQuantity.Cmp(frac(3, 4)))
	assert.True(t, line.Satisfied)
	assert.True(t, plan.Feasible)
	assert.NotEmpty(t, plan.Notes)
}

func TestCookRejectsNonPositiveScale(t *testing.T) {
	svc, _ := newTestService(t, testPantry())

	_, err := svc.Cook(context.Background(), testRecipe(), testPantry(), frac(0, 1), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidScale)

	_, err = svc.Cook(context.Background(), testRecipe(), testPantry(), frac(-1, 2), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidScale)
}

func TestCookRejectsNonPositiveConversionFactor(t *testing.T) {
	svc, _ := newTestService(t, testPantry())

	for _, factor := range []domain.Fraction{frac(-1, 1), frac(0, 1)} {
		subs := domain.SubstitutionMap{
			"flour": {To: "flour", ConversionFactor: factor},
		}
		_, err := svc.Cook(context.Background(), testRecipe(), testPantry(), frac(1, 1), subs)
		assert.ErrorIs(t, err, domain.ErrInvalidConversionFactor, "factor %s", factor)
	}
}

func TestCookRejectsEmptyRecipe(t *testing.T) {
	svc, _ := newTestService(t, testPantry())

	_, err := svc.Cook(context.Background(), &domain.ParsedRecipe{RecipeID: "empty"}, testPantry(), frac(1, 1), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyRecipe)
}

func TestCookDoesNotMutatePantry(t *testing.T) {
	pantry := testPantry()
	svc, _ := newTestService(t, pantry)

	_, err := svc.Cook(context.Background(), testRecipe(), pantry, frac(2, 1), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, pantry.Stock["flour"].Quantity.Cmp(frac(3, 1)))
	assert.Equal(t, 0, pantry.Stock["salt"].Quantity.Cmp(frac(8, 1)))
}

func TestCommitDeductsStock(t *testing.T) {
	ctx := context.Background()
	svc, pantries := newTestService(t, testPantry())

	plan, err := svc.Cook(ctx, testRecipe(), testPantry(), frac(1, 1), nil)
	require.NoError(t, err)
	require.True(t, plan.Feasible)

	require.NoError(t, svc.Commit(ctx, plan))

	after, err := pantries.Read(ctx, "pantry-1")
	require.NoError(t, err)
	assert.Equal(t, 0, after.Stock["flour"].Quantity.Cmp(frac(2, 1)))
	assert.Equal(t, 0, after.Stock["salt"].Quantity.Cmp(frac(3, 1)))
}

func TestCommitIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	svc, pantries := newTestService(t, testPantry())

	plan, err := svc.Cook(ctx, testRecipe(), testPantry(), frac(1, 1), nil)
	require.NoError(t, err)

	// Stock moved after the plan was computed; salt is now short
	drained := testPantry()
	drained.Stock["salt"] = domain.StockEntry{Quantity: frac(2, 1), Unit: domain.UnitTeaspoon}
	require.NoError(t, pantries.Write(ctx, drained))

	err = svc.Commit(ctx, plan)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Flour must be untouched even though its deduction would have succeeded
	after, err := pantries.Read(ctx, "pantry-1")
	require.NoError(t, err)
	assert.Equal(t, 0, after.Stock["flour"].Quantity.Cmp(frac(3, 1)))
	assert.Equal(t, 0, after.Stock["salt"].Quantity.Cmp(frac(2, 1)))
}

func TestCommitNeverAddsStock(t *testing.T) {
	ctx := context.Background()
	svc, pantries := newTestService(t, testPantry())

	// A hand-built plan demanding a negative amount would credit the
	// pantry if it were deducted
	plan := &domain.CookPlan{
		RecipeID: "recipe-1",
		PantryID: "pantry-1",
		Scale:    frac(1, 1),
		Feasible: true,
		Lines: []domain.CookPlanLine{
			{IngredientName: "flour", RequiredQuantity: fracPtr(-1, 1), Unit: unitPtr(domain.UnitCup), Satisfied: true},
		},
	}

	err := svc.Commit(ctx, plan)
	assert.ErrorIs(t, err, domain.ErrInvalidConversionFactor)

	after, err := pantries.Read(ctx, "pantry-1")
	require.NoError(t, err)
	assert.Equal(t, 0, after.Stock["flour"].Quantity.Cmp(frac(3, 1)), "flour stock must not grow")
}

func TestCommitUnknownPantry(t *testing.T) {
	svc, _ := newTestService(t, nil)

	err := svc.Commit(context.Background(), &domain.CookPlan{PantryID: "nope"})
	assert.ErrorIs(t, err, domain.ErrPantryNotFound)
}

func TestCommitSerializesPerPantry(t *testing.T) {
	ctx := context.Background()
	pantry := &domain.PantryState{
		PantryID: "pantry-1",
		Stock: map[string]domain.StockEntry{
			"flour": {Quantity: frac(10, 1), Unit: domain.UnitCup},
			"salt":  {Quantity: frac(100, 1), Unit: domain.UnitTeaspoon},
		},
	}
	svc, pantries := newTestService(t, pantry)

	plan, err := svc.Cook(ctx, testRecipe(), pantry, frac(1, 1), nil)
	require.NoError(t, err)

	// 10 cups of flour supports exactly 10 commits; extra attempts must
	// fail cleanly rather than corrupt stock
	const attempts = 15
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Commit(ctx, plan)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 10, succeeded)

	after, err := pantries.Read(ctx, "pantry-1")
	require.NoError(t, err)
	assert.True(t, after.Stock["flour"].Quantity.IsZero())
	assert.Equal(t, 0, after.Stock["salt"].Quantity.Cmp(frac(50, 1)))
}

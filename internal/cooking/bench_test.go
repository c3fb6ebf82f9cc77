package cooking

import (
	"context"
	"fmt"
	"testing"

	"github.com/osse101/RecipeVault_Go/internal/concurrency"
	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// stubPantryStore avoids lock and copy overhead so the benchmark measures
// plan computation, not store plumbing
type stubPantryStore struct {
	pantry *domain.PantryState
}

func (s *stubPantryStore) Read(ctx context.Context, pantryID string) (*domain.PantryState, error) {
	return s.pantry, nil
}

func (s *stubPantryStore) Write(ctx context.Context, pantry *domain.PantryState) error {
	s.pantry = pantry
	return nil
}

func benchRecipe(lines int) *domain.ParsedRecipe {
	recipe := &domain.ParsedRecipe{RecipeID: "bench-recipe"}
	for i := 0; i < lines; i++ {
		qty := domain.NewFraction(int64(i+1), 2)
		unit := domain.UnitCup
		recipe.Ingredients = append(recipe.Ingredients, domain.IngredientLine{
			Quantity: &qty,
			Unit:     &unit,
			Name:     fmt.Sprintf("ingredient%d", i),
		})
	}
	return recipe
}

func benchPantry(lines int) *domain.PantryState {
	pantry := &domain.PantryState{PantryID: "bench-pantry", Stock: make(map[string]domain.StockEntry, lines)}
	for i := 0; i < lines; i++ {
		pantry.Stock[fmt.Sprintf("ingredient%d", i)] = domain.StockEntry{
			Quantity: domain.NewFraction(10000, 1),
			Unit:     domain.UnitMilliliter,
		}
	}
	return pantry
}

func BenchmarkCook(b *testing.B) {
	const lines = 20
	recipe := benchRecipe(lines)
	pantry := benchPantry(lines)
	svc := NewService(&stubPantryStore{pantry: pantry}, concurrency.NewLockManager())
	scale := domain.NewFraction(3, 2)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := svc.Cook(ctx, recipe, pantry, scale, nil)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCommit(b *testing.B) {
	const lines = 20
	recipe := benchRecipe(lines)
	pantry := benchPantry(lines)
	store := &stubPantryStore{pantry: pantry}
	svc := NewService(store, concurrency.NewLockManager())
	ctx := context.Background()

	plan, err := svc.Cook(ctx, recipe, pantry, domain.NewFraction(1, 1), nil)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		store.pantry = benchPantry(lines)
		if err := svc.Commit(ctx, plan); err != nil {
			b.Fatal(err)
		}
	}
}

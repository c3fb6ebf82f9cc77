package repository

import (
	"context"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// RecipeStore persists parsed recipes. Writes are once-only per
// (content hash, parser version); Put fails with ErrDuplicateRecipe when
// that key is already occupied. Lookups return (nil, nil) when absent.
type RecipeStore interface {
	Put(ctx context.Context, recipe *domain.ParsedRecipe) error
	GetByKey(ctx context.Context, contentHash, parserVersion string) (*domain.ParsedRecipe, error)
	GetByID(ctx context.Context, recipeID string) (*domain.ParsedRecipe, error)
}

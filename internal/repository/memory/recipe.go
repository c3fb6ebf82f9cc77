package memory

import (
	"context"
	"sync"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

type recipeKey struct {
	contentHash   string
	parserVersion string
}

// RecipeStore is an in-memory repository.RecipeStore with write-once
// semantics per (content hash, parser version)
type RecipeStore struct {
	mu    sync.Mutex
	byKey map[recipeKey]*domain.ParsedRecipe
	byID  map[string]recipeKey
}

// NewRecipeStore creates an empty recipe store
func NewRecipeStore() *RecipeStore {
	return &RecipeStore{
		byKey: make(map[recipeKey]*domain.ParsedRecipe),
		byID:  make(map[string]recipeKey),
	}
}

// Put stores a parsed recipe; fails with ErrDuplicateRecipe if output for
// this image and parser version already exists
func (s *RecipeStore) Put(ctx context.Context, recipe *domain.ParsedRecipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recipeKey{contentHash: recipe.SourceImageHash, parserVersion: recipe.ParserVersion}
	if _, exists := s.byKey[key]; exists {
		return domain.ErrDuplicateRecipe
	}

	stored := cloneRecipe(recipe)
	s.byKey[key] = stored
	s.byID[recipe.RecipeID] = key
	return nil
}

// GetByKey returns the recipe for (contentHash, parserVersion), or (nil, nil)
func (s *RecipeStore) GetByKey(ctx context.Context, contentHash, parserVersion string) (*domain.ParsedRecipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, ok := s.byKey[recipeKey{contentHash: contentHash, parserVersion: parserVersion}]
	if !ok {
		return nil, nil
	}
	return cloneRecipe(recipe), nil
}

// GetByID returns the recipe with the given id, or (nil, nil)
func (s *RecipeStore) GetByID(ctx context.Context, recipeID string) (*domain.ParsedRecipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.byID[recipeID]
	if !ok {
		return nil, nil
	}
	return cloneRecipe(s.byKey[key]), nil
}

func cloneRecipe(r *domain.ParsedRecipe) *domain.ParsedRecipe {
	copied := *r
	copied.Ingredients = append([]domain.IngredientLine(nil), r.Ingredients...)
	copied.Steps = append([]string(nil), r.Steps...)
	return &copied
}

package repository

import (
	"context"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// PantryStore reads and writes pantry snapshots. Write replaces the whole
// snapshot; callers serialize writers per pantry (see cooking.Service).
// Read returns (nil, nil) when the pantry does not exist.
type PantryStore interface {
	Read(ctx context.Context, pantryID string) (*domain.PantryState, error)
	Write(ctx context.Context, state *domain.PantryState) error
}

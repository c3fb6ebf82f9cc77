package memory

import (
	"context"
	"sync"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// PantryStore is an in-memory repository.PantryStore
type PantryStore struct {
	mu       sync.Mutex
	pantries map[string]*domain.PantryState
}

// NewPantryStore creates an empty pantry store
func NewPantryStore() *PantryStore {
	return &PantryStore{pantries: make(map[string]*domain.PantryState)}
}

// Read returns the pantry snapshot, or (nil, nil) if absent
func (s *PantryStore) Read(ctx context.Context, pantryID string) (*domain.PantryState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.pantries[pantryID]
	if !ok {
		return nil, nil
	}
	return state.Clone(), nil
}

// Write replaces the pantry snapshot
func (s *PantryStore) Write(ctx context.Context, state *domain.PantryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pantries[state.PantryID] = state.Clone()
	return nil
}

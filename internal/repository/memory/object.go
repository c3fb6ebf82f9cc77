package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// ObjectStore is an in-memory content-addressed image store
type ObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewObjectStore creates an empty object store
func NewObjectStore() *ObjectStore {
	return &ObjectStore{objects: make(map[string][]byte)}
}

// Put stores image bytes under a storage ref. Used by tests and the dev
// upload path; production images arrive through the web layer.
func (s *ObjectStore) Put(ctx context.Context, storageRef string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[storageRef] = append([]byte(nil), data...)
	return nil
}

// Get returns the bytes stored under storageRef
func (s *ObjectStore) Get(ctx context.Context, storageRef string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[storageRef]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, storageRef)
	}
	return append([]byte(nil), data...), nil
}

// Package storage provides the content-addressed blob store for uploaded
// recipe images. Objects are immutable: the storage ref is the SHA-256
// content hash, so a ref can never point at different bytes over time.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// HashBytes returns the hex-encoded SHA-256 content hash used as the
// storage ref for uploaded images
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FileStore keeps objects as flat files named by content hash
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create object store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Put stores the bytes and returns their content hash. Writing the same
// bytes twice is a no-op that returns the same ref.
func (s *FileStore) Put(ctx context.Context, data []byte) (string, error) {
	ref := HashBytes(data)
	path := s.path(ref)

	if _, err := os.Stat(path); err == nil {
		return ref, nil
	}

	// Write to a temp file then rename so readers never see partial objects
	tmp, err := os.CreateTemp(s.dir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp object: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to commit object: %w", err)
	}
	return ref, nil
}

// Get returns the bytes stored under storageRef
func (s *FileStore) Get(ctx context.Context, storageRef string) ([]byte, error) {
	data, err := os.ReadFile(s.path(storageRef))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, storageRef)
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

func (s *FileStore) path(ref string) string {
	return filepath.Join(s.dir, ref)
}

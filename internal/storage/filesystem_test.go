package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

func TestFileStorePutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	data := []byte("recipe image bytes")
	ref, err := store.Put(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, HashBytes(data), ref)

	got, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestFileStorePutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	data := []byte("same bytes")
	first, err := store.Put(ctx, data)
	require.NoError(t, err)
	second, err := store.Put(ctx, data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFileStoreGetMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, domain.ErrImageNotFound)
}

func TestHashBytesIsStable(t *testing.T) {
	a := HashBytes([]byte("payload"))
	b := HashBytes([]byte("payload"))
	c := HashBytes([]byte("other"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

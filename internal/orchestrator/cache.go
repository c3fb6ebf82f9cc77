package orchestrator

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment when the cached data structure changes to auto-invalidate old
// entries.
const CacheSchemaVersion = "1.0"

// cachedRecipeEntry wraps a recipe with version metadata for cache invalidation
type cachedRecipeEntry struct {
	Version  string               `json:"version"`
	Recipe   *domain.ParsedRecipe `json:"recipe"`
	CachedAt time.Time            `json:"cached_at"`
}

// recipeCache provides an in-memory LRU cache for recipe lookups with
// time-based expiration. Parsed recipes are immutable once written, so
// staleness only matters across schema changes.
type recipeCache struct {
	lru *expirable.LRU[string, *cachedRecipeEntry]
}

func newRecipeCache(size int, ttl time.Duration) *recipeCache {
	return &recipeCache{
		lru: expirable.NewLRU[string, *cachedRecipeEntry](size, nil, ttl),
	}
}

// Get retrieves a recipe from the cache. Entries with a mismatched schema
// version are dropped on read.
func (c *recipeCache) Get(recipeID string) (*domain.ParsedRecipe, bool) {
	entry, found := c.lru.Get(recipeID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(recipeID)
		return nil, false
	}

	return entry.Recipe, true
}

// Set stores a recipe in the cache with current schema version
func (c *recipeCache) Set(recipeID string, recipe *domain.ParsedRecipe) {
	c.lru.Add(recipeID, &cachedRecipeEntry{
		Version:  CacheSchemaVersion,
		Recipe:   recipe,
		CachedAt: time.Now(),
	})
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// PantryRepository implements repository.PantryStore for PostgreSQL. Stock
// is a JSONB map keyed by canonical ingredient name; the cooking engine
// serializes commits per pantry above this layer.
type PantryRepository struct {
	db *pgxpool.Pool
}

// NewPantryRepository creates a new PantryRepository
func NewPantryRepository(db *pgxpool.Pool) *PantryRepository {
	return &PantryRepository{db: db}
}

// Read returns the pantry snapshot, or (nil, nil) when absent
func (r *PantryRepository) Read(ctx context.Context, pantryID string) (*domain.PantryState, error) {
	query := `SELECT pantry_id, stock FROM pantries WHERE pantry_id = $1`

	var pantry domain.PantryState
	var stock []byte
	err := r.db.QueryRow(ctx, query, pantryID).Scan(&pantry.PantryID, &stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadPantry, err)
	}

	if err := json.Unmarshal(stock, &pantry.Stock); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadPantry, err)
	}
	return &pantry, nil
}

// Write upserts the full pantry snapshot
func (r *PantryRepository) Write(ctx context.Context, pantry *domain.PantryState) error {
	stock, err := json.Marshal(pantry.Stock)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWritePantry, err)
	}

	query := `
		INSERT INTO pantries (pantry_id, stock, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (pantry_id) DO UPDATE SET stock = EXCLUDED.stock, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, pantry.PantryID, stock, time.Now().UTC()); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWritePantry, err)
	}
	return nil
}

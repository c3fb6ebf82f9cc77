package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// RecipeRepository implements repository.RecipeStore for PostgreSQL.
// Write-once per (content hash, parser version), enforced by a unique
// constraint rather than application locking.
type RecipeRepository struct {
	db *pgxpool.Pool
}

// NewRecipeRepository creates a new RecipeRepository
func NewRecipeRepository(db *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// recipeDocument is the JSONB body holding everything except the key columns
type recipeDocument struct {
	Title       string                  `json:"title"`
	Ingredients []domain.IngredientLine `json:"ingredients"`
	Steps       []string                `json:"steps"`
}

// Put stores a parsed recipe; fails with ErrDuplicateRecipe when output
// for this image and parser version already exists
func (r *RecipeRepository) Put(ctx context.Context, recipe *domain.ParsedRecipe) error {
	doc, err := json.Marshal(recipeDocument{
		Title:       recipe.Title,
		Ingredients: recipe.Ingredients,
		Steps:       recipe.Steps,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertRecipe, err)
	}

	query := `
		INSERT INTO recipes (recipe_id, content_hash, parser_version, document, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.db.Exec(ctx, query,
		recipe.RecipeID,
		recipe.SourceImageHash,
		recipe.ParserVersion,
		doc,
		recipe.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return domain.ErrDuplicateRecipe
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertRecipe, err)
	}
	return nil
}

// GetByKey returns the recipe for (contentHash, parserVersion), or (nil, nil)
func (r *RecipeRepository) GetByKey(ctx context.Context, contentHash, parserVersion string) (*domain.ParsedRecipe, error) {
	query := `
		SELECT recipe_id, content_hash, parser_version, document, created_at
		FROM recipes
		WHERE content_hash = $1 AND parser_version = $2
	`
	return r.scanOne(r.db.QueryRow(ctx, query, contentHash, parserVersion))
}

// GetByID returns the recipe with the given id, or (nil, nil)
func (r *RecipeRepository) GetByID(ctx context.Context, recipeID string) (*domain.ParsedRecipe, error) {
	query := `
		SELECT recipe_id, content_hash, parser_version, document, created_at
		FROM recipes
		WHERE recipe_id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, recipeID))
}

func (r *RecipeRepository) scanOne(row pgx.Row) (*domain.ParsedRecipe, error) {
	var recipe domain.ParsedRecipe
	var doc []byte
	err := row.Scan(
		&recipe.RecipeID,
		&recipe.SourceImageHash,
		&recipe.ParserVersion,
		&doc,
		&recipe.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRecipe, err)
	}

	var body recipeDocument
	if err := json.Unmarshal(doc, &body); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRecipe, err)
	}
	recipe.Title = body.Title
	recipe.Ingredients = body.Ingredients
	recipe.Steps = body.Steps
	return &recipe, nil
}

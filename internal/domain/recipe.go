package domain

import "time"

// RecipeImage is a photographed recipe awaiting ingestion. Identity is the
// content hash of the image bytes; two uploads of the same photo are the
// same image.
type RecipeImage struct {
	ContentHash string    `json:"content_hash"`
	StorageRef  string    `json:"storage_ref"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// IngredientLine is one parsed ingredient entry. Quantity and Unit are nil
// for lines like "salt to taste" where no measurable amount was written.
type IngredientLine struct {
	RawText    string    `json:"raw_text"`
	Quantity   *Fraction `json:"quantity,omitempty"`
	Unit       *Unit     `json:"unit,omitempty"`
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"` // 0..1
}

// HasQuantity reports whether the line carries a measurable amount.
func (l IngredientLine) HasQuantity() bool {
	return l.Quantity != nil && l.Unit != nil
}

// ParsedRecipe is the structured output of the ingestion pipeline.
// Immutable once written; re-parsing under a new parser version produces a
// new recipe rather than mutating this one.
type ParsedRecipe struct {
	RecipeID        string           `json:"recipe_id"`
	Title           string           `json:"title"`
	Ingredients     []IngredientLine `json:"ingredients"`
	Steps           []string         `json:"steps"`
	SourceImageHash string           `json:"source_image_hash"`
	ParserVersion   string           `json:"parser_version"`
	CreatedAt       time.Time        `json:"created_at,omitempty"`
}

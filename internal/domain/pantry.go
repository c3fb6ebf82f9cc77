package domain

// StockEntry is the amount of one ingredient held in a pantry
type StockEntry struct {
	Quantity Fraction `json:"quantity"`
	Unit     Unit     `json:"unit"`
}

// PantryState is a snapshot of a pantry's inventory keyed by canonical
// ingredient name. Only the cooking engine's commit step mutates stock.
type PantryState struct {
	PantryID string                `json:"pantry_id"`
	Stock    map[string]StockEntry `json:"stock"`
}

// Clone returns a deep copy so cook computations never alias live stock.
func (p *PantryState) Clone() *PantryState {
	stock := make(map[string]StockEntry, len(p.Stock))
	for name, entry := range p.Stock {
		stock[name] = entry
	}
	return &PantryState{PantryID: p.PantryID, Stock: stock}
}

// Substitution swaps one ingredient for another at a conversion ratio.
// Supplied per cook request, never persisted.
type Substitution struct {
	To               string   `json:"to"`
	ConversionFactor Fraction `json:"conversion_factor"`
}

// SubstitutionMap maps canonical ingredient names to their replacements
type SubstitutionMap map[string]Substitution

// CookPlanLine is one ingredient's resolved requirement in a cook plan
type CookPlanLine struct {
	IngredientName   string    `json:"ingredient_name"`
	RequiredQuantity *Fraction `json:"required_quantity,omitempty"`
	Unit             *Unit     `json:"unit,omitempty"`
	Available        Fraction  `json:"available"`
	Satisfied        bool      `json:"satisfied"`
	SubstitutedFrom  string    `json:"substituted_from,omitempty"`
}

// CookPlan is the validated, scaled ingredient plan for one cook request.
// Transient: constructed and returned, never stored by this core.
type CookPlan struct {
	RecipeID string         `json:"recipe_id"`
	PantryID string         `json:"pantry_id"`
	Scale    Fraction       `json:"scale"`
	Lines    []CookPlanLine `json:"lines"`
	Feasible bool           `json:"feasible"`
	Notes    []string       `json:"notes,omitempty"`
}

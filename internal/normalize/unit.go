package normalize

import (
	"strings"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// unitInfo ties a canonical unit to its dimension and its factor relative
// to the dimension's base unit (mass: gram, volume: milliliter, count:
// piece). Factors are exact rationals so conversions round-trip cleanly.
type unitInfo struct {
	dimension domain.Dimension
	factor    domain.Fraction
}

// One teaspoon is exactly 4.92892159375 ml (US customary); every other
// volume factor is a whole multiple of the teaspoon.
var teaspoonMl = domain.NewFraction(492892159375, 100000000000)

// One avoirdupois ounce is exactly 28.349523125 g.
var ounceGrams = domain.NewFraction(28349523125, 1000000000)

var unitTable = map[domain.Unit]unitInfo{
	// Mass
	domain.UnitGram:     {domain.DimensionMass, domain.FractionFromInt(1)},
	domain.UnitKilogram: {domain.DimensionMass, domain.FractionFromInt(1000)},
	domain.UnitOunce:    {domain.DimensionMass, ounceGrams},
	domain.UnitPound:    {domain.DimensionMass, ounceGrams.Mul(domain.FractionFromInt(16))},

	// Volume
	domain.UnitMilliliter: {domain.DimensionVolume, domain.FractionFromInt(1)},
	domain.UnitLiter:      {domain.DimensionVolume, domain.FractionFromInt(1000)},
	domain.UnitTeaspoon:   {domain.DimensionVolume, teaspoonMl},
	domain.UnitTablespoon: {domain.DimensionVolume, teaspoonMl.Mul(domain.FractionFromInt(3))},
	domain.UnitFluidOunce: {domain.DimensionVolume, teaspoonMl.Mul(domain.FractionFromInt(6))},
	domain.UnitCup:        {domain.DimensionVolume, teaspoonMl.Mul(domain.FractionFromInt(48))},
	domain.UnitPint:       {domain.DimensionVolume, teaspoonMl.Mul(domain.FractionFromInt(96))},
	domain.UnitQuart:      {domain.DimensionVolume, teaspoonMl.Mul(domain.FractionFromInt(192))},

	// Count
	domain.UnitPiece: {domain.DimensionCount, domain.FractionFromInt(1)},
	domain.UnitDozen: {domain.DimensionCount, domain.FractionFromInt(12)},
}

// unitSynonyms maps lowercased, punctuation-stripped tokens to canonical
// units. Exact-match lookup only; anything else returns no unit.
var unitSynonyms = map[string]domain.Unit{
	"g":           domain.UnitGram,
	"gram":        domain.UnitGram,
	"grams":       domain.UnitGram,
	"kg":          domain.UnitKilogram,
	"kilogram":    domain.UnitKilogram,
	"kilograms":   domain.UnitKilogram,
	"oz":          domain.UnitOunce,
	"ounce":       domain.UnitOunce,
	"ounces":      domain.UnitOunce,
	"lb":          domain.UnitPound,
	"lbs":         domain.UnitPound,
	"pound":       domain.UnitPound,
	"pounds":      domain.UnitPound,
	"ml":          domain.UnitMilliliter,
	"milliliter":  domain.UnitMilliliter,
	"milliliters": domain.UnitMilliliter,
	"millilitre":  domain.UnitMilliliter,
	"millilitres": domain.UnitMilliliter,
	"l":           domain.UnitLiter,
	"liter":       domain.UnitLiter,
	"liters":      domain.UnitLiter,
	"litre":       domain.UnitLiter,
	"litres":      domain.UnitLiter,
	"tsp":         domain.UnitTeaspoon,
	"teaspoon":    domain.UnitTeaspoon,
	"teaspoons":   domain.UnitTeaspoon,
	"tbsp":        domain.UnitTablespoon,
	"tbs":         domain.UnitTablespoon,
	"tablespoon":  domain.UnitTablespoon,
	"tablespoons": domain.UnitTablespoon,
	"floz":        domain.UnitFluidOunce,
	"fl oz":       domain.UnitFluidOunce,
	"cup":         domain.UnitCup,
	"cups":        domain.UnitCup,
	"c":           domain.UnitCup,
	"pint":        domain.UnitPint,
	"pints":       domain.UnitPint,
	"pt":          domain.UnitPint,
	"quart":       domain.UnitQuart,
	"quarts":      domain.UnitQuart,
	"qt":          domain.UnitQuart,
	"piece":       domain.UnitPiece,
	"pieces":      domain.UnitPiece,
	"pc":          domain.UnitPiece,
	"each":        domain.UnitPiece,
	"dozen":       domain.UnitDozen,
	"doz":         domain.UnitDozen,
}

// ParseUnit maps a unit token ("tbsp", "Tbsp.", "tablespoon") to its
// canonical unit. Unknown tokens return ("", false); the caller decides
// whether a missing unit matters.
func ParseUnit(text string) (domain.Unit, bool) {
	token := stripPunctuation(strings.ToLower(strings.TrimSpace(text)))
	if token == "" {
		return "", false
	}
	unit, ok := unitSynonyms[token]
	return unit, ok
}

// UnitDimension returns the dimension a canonical unit measures
func UnitDimension(unit domain.Unit) domain.Dimension {
	if info, ok := unitTable[unit]; ok {
		return info.dimension
	}
	return domain.DimensionUnknown
}

// stripPunctuation removes periods and commas that OCR tacks onto unit
// abbreviations ("Tbsp.", "oz,")
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', ';', ':':
			return -1
		default:
			return r
		}
	}, s)
}

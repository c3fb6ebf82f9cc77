package domain

// Dimension is the physical quantity a unit measures. The set is closed:
// conversion is only defined within a dimension, never across (no density
// guessing between mass and volume).
type Dimension int

// Dimensions
const (
	DimensionUnknown Dimension = iota
	DimensionMass
	DimensionVolume
	DimensionCount
)

// String returns the dimension name
func (d Dimension) String() string {
	switch d {
	case DimensionMass:
		return "mass"
	case DimensionVolume:
		return "volume"
	case DimensionCount:
		return "count"
	default:
		return "unknown"
	}
}

// Unit is a canonical measurement unit. Synonym resolution ("tbsp",
// "tablespoons") happens in the normalize package; domain code only ever
// sees these canonical values.
type Unit string

// Mass units
const (
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"
	UnitOunce    Unit = "oz"
	UnitPound    Unit = "lb"
)

// Volume units (US customary where applicable)
const (
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitFluidOunce Unit = "floz"
	UnitCup        Unit = "cup"
	UnitPint       Unit = "pint"
	UnitQuart      Unit = "quart"
)

// Count units
const (
	UnitPiece Unit = "piece"
	UnitDozen Unit = "dozen"
)

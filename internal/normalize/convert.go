package normalize

import (
	"fmt"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// Convert re-expresses qty from one unit in another. Both units must
// measure the same dimension; a mass-to-volume conversion is a defect in
// the input data and fails with ErrIncompatibleUnit rather than guessing
// a density.
func Convert(qty domain.Fraction, from, to domain.Unit) (domain.Fraction, error) {
	if from == to {
		return qty, nil
	}

	fromInfo, ok := unitTable[from]
	if !ok {
		return domain.Fraction{}, fmt.Errorf("%w: %s", domain.ErrUnknownUnit, from)
	}
	toInfo, ok := unitTable[to]
	if !ok {
		return domain.Fraction{}, fmt.Errorf("%w: %s", domain.ErrUnknownUnit, to)
	}

	if fromInfo.dimension != toInfo.dimension {
		return domain.Fraction{}, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)",
			domain.ErrIncompatibleUnit, from, fromInfo.dimension, to, toInfo.dimension)
	}

	return qty.Mul(fromInfo.factor).Div(toInfo.factor), nil
}

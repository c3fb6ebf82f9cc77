// Package normalize holds the pure text and quantity utilities shared by
// the recipe parser and the cooking engine: quantity parsing, unit synonym
// resolution, ingredient name canonicalization and unit conversion. No
// state, safe from any number of goroutines.
package normalize

import (
	"strconv"
	"strings"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// ParsedQuantity is the result of parsing a quantity token. IsRange is
// retained so the parser can degrade confidence for "2-3 cups" style
// amounts, where the midpoint is a guess rather than a measurement.
type ParsedQuantity struct {
	Value   domain.Fraction
	IsRange bool
}

// Unicode vulgar fraction glyphs that OCR engines commonly emit
var vulgarFractions = map[rune]domain.Fraction{
	'¼': domain.NewFraction(1, 4),
	'½': domain.NewFraction(1, 2),
	'¾': domain.NewFraction(3, 4),
	'⅓': domain.NewFraction(1, 3),
	'⅔': domain.NewFraction(2, 3),
	'⅛': domain.NewFraction(1, 8),
	'⅜': domain.NewFraction(3, 8),
	'⅝': domain.NewFraction(5, 8),
	'⅞': domain.NewFraction(7, 8),
}

// ParseQuantity parses integers ("2"), decimals ("2.5"), fractions
// ("3/4"), mixed numbers ("1 1/2"), unicode vulgar fractions ("1½") and
// ranges ("2-3", midpoint). Unparseable text yields nil, not an error:
// absence of a quantity is normal recipe text, not a failure.
func ParseQuantity(text string) *ParsedQuantity {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	// Ranges: "2-3" or "2–3". Midpoint, flagged as a range.
	for _, sep := range []string{"-", "–"} {
		lo, hi, found := strings.Cut(text, sep)
		if !found {
			continue
		}
		left := parseSimpleQuantity(strings.TrimSpace(lo))
		right := parseSimpleQuantity(strings.TrimSpace(hi))
		if left == nil || right == nil {
			continue
		}
		mid := left.Add(*right).Div(domain.FractionFromInt(2))
		return &ParsedQuantity{Value: mid, IsRange: true}
	}

	if value := parseSimpleQuantity(text); value != nil {
		return &ParsedQuantity{Value: *value}
	}
	return nil
}

// parseSimpleQuantity handles a single non-range quantity token
func parseSimpleQuantity(text string) *domain.Fraction {
	if text == "" {
		return nil
	}

	// Mixed numbers: "1 1/2" or "1½" (whole part followed by a fraction)
	if whole, frac, found := splitMixed(text); found {
		wholeVal := parseSimpleQuantity(whole)
		fracVal := parseSimpleQuantity(frac)
		if wholeVal != nil && fracVal != nil {
			sum := wholeVal.Add(*fracVal)
			return &sum
		}
		return nil
	}

	// Unicode vulgar fraction on its own
	runes := []rune(text)
	if len(runes) == 1 {
		if frac, ok := vulgarFractions[runes[0]]; ok {
			return &frac
		}
	}

	// Plain fraction: "3/4"
	if numStr, denStr, found := strings.Cut(text, "/"); found {
		num, errN := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
		den, errD := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
		if errN != nil || errD != nil || den <= 0 || num < 0 {
			return nil
		}
		frac := domain.NewFraction(num, den)
		return &frac
	}

	// Integer. Negative amounts are never a recipe quantity, same as the
	// decimal path below.
	if n, err := strconv.ParseInt(text, 10, 64); err == nil && n >= 0 {
		frac := domain.FractionFromInt(n)
		return &frac
	}

	// Decimal
	if f, err := strconv.ParseFloat(text, 64); err == nil && f >= 0 {
		frac := domain.FractionFromFloat(f)
		return &frac
	}

	return nil
}

// splitMixed splits "1 1/2" or "1½" into whole and fractional parts
func splitMixed(text string) (whole, frac string, found bool) {
	if w, f, ok := strings.Cut(text, " "); ok {
		if strings.Contains(f, "/") && isDigits(w) {
			return w, strings.TrimSpace(f), true
		}
		return "", "", false
	}

	runes := []rune(text)
	if len(runes) < 2 {
		return "", "", false
	}
	if _, ok := vulgarFractions[runes[len(runes)-1]]; ok {
		head := string(runes[:len(runes)-1])
		if isDigits(head) {
			return head, string(runes[len(runes)-1]), true
		}
	}
	return "", "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

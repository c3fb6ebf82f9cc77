// Package parser turns raw OCR text into a structured recipe. It never
// sees image bytes and never touches storage; that belongs to the
// ingestion runner.
package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/osse101/RecipeVault_Go/internal/domain"
	"github.com/osse101/RecipeVault_Go/internal/normalize"
)

// Version tags the parsing algorithm revision. Output persistence is keyed
// by (content hash, parser version); bump this when parsing behavior
// changes so reruns are distinguishable from genuine re-parses.
const Version = "1.0"

// Confidence tiers for ingredient lines
const (
	// Quantity and unit both parsed
	confidenceFull = 1.0
	// Only a name was extracted
	confidenceNameOnly = 0.6
	// Line kept verbatim, nothing parsed
	confidenceRaw = 0.3
	// Penalty applied when the quantity came from a range midpoint
	rangePenalty = 0.1
)

// Parser converts OCR text into a ParsedRecipe
type Parser struct {
	version string
}

// New creates a parser at the current algorithm version
func New() *Parser {
	return &Parser{version: Version}
}

// ParserVersion returns the version stamped onto parsed output
func (p *Parser) ParserVersion() string {
	return p.version
}

// Parse classifies the document's lines, extracts structured ingredient
// lines with per-line confidence, and collects the remaining text as
// ordered steps. It fails with ErrEmptyDocument when no ingredient or
// step lines survive classification - that is a terminal condition for
// the caller, not a retryable one, because the upstream OCR pass almost
// certainly produced garbage.
func (p *Parser) Parse(text string) (*domain.ParsedRecipe, error) {
	classified := classify(strings.Split(text, "\n"))

	recipe := &domain.ParsedRecipe{ParserVersion: p.version}
	var stepLines []string

	for _, line := range classified {
		switch line.kind {
		case LineTitle:
			recipe.Title = line.text
		case LineIngredient:
			recipe.Ingredients = append(recipe.Ingredients, parseIngredientLine(line.text))
		case LineStep:
			stepLines = append(stepLines, line.text)
		}
	}

	recipe.Steps = mergeWrappedSteps(stepLines)

	if len(recipe.Ingredients) == 0 && len(recipe.Steps) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	return recipe, nil
}

// parseIngredientLine splits a leading quantity and unit from the trailing
// ingredient name. Lines that resist parsing are kept verbatim with
// degraded confidence rather than dropped; a partially readable line is
// still worth showing to the user.
func parseIngredientLine(text string) domain.IngredientLine {
	line := domain.IngredientLine{RawText: text}

	tokens := strings.Fields(text)
	qty, consumed := takeQuantity(tokens)
	if qty != nil {
		rest := tokens[consumed:]
		if len(rest) > 0 {
			if unit, ok := normalize.ParseUnit(rest[0]); ok {
				name := normalize.CanonicalizeName(strings.Join(rest[1:], " "))
				if name != "" {
					line.Quantity = &qty.Value
					line.Unit = &unit
					line.Name = name
					line.Confidence = confidenceFull
					if qty.IsRange {
						line.Confidence -= rangePenalty
					}
					return line
				}
			}
		}
		// Quantity without a recognizable unit: "2 eggs"
		name := normalize.CanonicalizeName(strings.Join(rest, " "))
		if name != "" {
			piece := domain.UnitPiece
			line.Quantity = &qty.Value
			line.Unit = &piece
			line.Name = name
			line.Confidence = confidenceFull
			if qty.IsRange {
				line.Confidence -= rangePenalty
			}
			return line
		}
	}

	// No quantity: "salt to taste" style. Name-only with mid confidence.
	if name := normalize.CanonicalizeName(text); hasLetter(name) {
		line.Name = name
		line.Confidence = confidenceNameOnly
		return line
	}

	// Nothing parsed; keep the raw line as the name so it is not lost
	line.Name = text
	line.Confidence = confidenceRaw
	return line
}

// hasLetter reports whether s contains at least one letter; a canonical
// name of pure symbols is OCR garbage, not an ingredient
func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// takeQuantity consumes up to two leading tokens as a quantity ("1 1/2"
// spans two tokens). Returns the parsed quantity and how many tokens it ate.
func takeQuantity(tokens []string) (*normalize.ParsedQuantity, int) {
	if len(tokens) == 0 {
		return nil, 0
	}
	if len(tokens) >= 2 {
		if qty := normalize.ParseQuantity(tokens[0] + " " + tokens[1]); qty != nil {
			// Only treat two tokens as one quantity for mixed numbers;
			// "2 cups" must not parse as a range or mixed value
			if strings.Contains(tokens[1], "/") {
				return qty, 2
			}
		}
	}
	if qty := normalize.ParseQuantity(tokens[0]); qty != nil {
		return qty, 1
	}
	return nil, 0
}

// startsWithQuantity reports whether a line opens with a parseable
// quantity token; used by the classifier's fallback heuristic
func startsWithQuantity(line string) bool {
	tokens := strings.Fields(line)
	qty, _ := takeQuantity(tokens)
	return qty != nil
}

// mergeWrappedSteps joins OCR line-wrap artifacts: a line lacking terminal
// punctuation followed by a line starting lowercase is one sentence split
// by the camera, not two steps.
func mergeWrappedSteps(lines []string) []string {
	var steps []string
	for _, line := range lines {
		if len(steps) > 0 && isWrapContinuation(steps[len(steps)-1], line) {
			steps[len(steps)-1] = steps[len(steps)-1] + " " + line
			continue
		}
		steps = append(steps, line)
	}
	return steps
}

func isWrapContinuation(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(prev)
	if last == '.' || last == '!' || last == '?' || last == ':' || last == ';' {
		return false
	}
	first := []rune(next)[0]
	return unicode.IsLower(first)
}

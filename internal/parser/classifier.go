package parser

import "strings"

// LineKind tags each raw OCR line with its role in the document. The
// classifier is the single place line roles are decided; downstream code
// switches on the tag instead of re-sniffing strings.
type LineKind int

const (
	LineNoise LineKind = iota
	LineTitle
	LineIngredient
	LineStep
	LineHeading
)

// classifiedLine pairs a raw line with its assigned role
type classifiedLine struct {
	text string
	kind LineKind
}

// Section headings recognized in OCR output, lowercased
var ingredientHeadings = map[string]bool{
	"ingredients":   true,
	"ingredient":    true,
	"you will need": true,
	"shopping list": true,
}

var stepHeadings = map[string]bool{
	"steps":        true,
	"step":         true,
	"directions":   true,
	"instructions": true,
	"method":       true,
	"preparation":  true,
}

// classify assigns a role to every line using positional heuristics: the
// first non-empty line is the title candidate, lines between an
// "Ingredients" heading and a "Steps"/"Directions" heading are ingredient
// candidates, and the remainder are steps. A line that opens with a
// quantity token is an ingredient no matter which section it sits in; OCR
// frequently drops or garbles headings. When the ingredient section was
// only inferred from quantity-led lines (no heading), the first line
// without a quantity ends it and starts the steps.
func classify(lines []string) []classifiedLine {
	type section int
	const (
		sectionPreamble section = iota
		sectionIngredients
		sectionSteps
	)

	classified := make([]classifiedLine, 0, len(lines))
	current := sectionPreamble
	implicitIngredients := false
	titleTaken := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			classified = append(classified, classifiedLine{text: raw, kind: LineNoise})
			continue
		}

		heading := normalizeHeading(line)
		switch {
		case ingredientHeadings[heading]:
			current = sectionIngredients
			implicitIngredients = false
			classified = append(classified, classifiedLine{text: line, kind: LineHeading})
			continue
		case stepHeadings[heading]:
			current = sectionSteps
			classified = append(classified, classifiedLine{text: line, kind: LineHeading})
			continue
		}

		var kind LineKind
		switch {
		case startsWithQuantity(line):
			kind = LineIngredient
			if current == sectionPreamble {
				current = sectionIngredients
				implicitIngredients = true
			}
		case current == sectionPreamble && !titleTaken:
			kind = LineTitle
			titleTaken = true
		case current == sectionIngredients && !implicitIngredients:
			kind = LineIngredient
		case current == sectionIngredients && implicitIngredients:
			current = sectionSteps
			kind = LineStep
		default:
			// Steps section, or preamble text after the title: keep as a
			// step so nothing the author wrote is lost
			kind = LineStep
		}
		classified = append(classified, classifiedLine{text: line, kind: kind})
	}

	return classified
}

// normalizeHeading strips decoration so "INGREDIENTS:" and "- Ingredients -"
// both match the heading table
func normalizeHeading(line string) string {
	return strings.TrimSpace(strings.Trim(strings.ToLower(line), " -=*:#."))
}

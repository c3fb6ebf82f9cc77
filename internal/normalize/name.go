package normalize

import "strings"

// singularSuffixRules is a small ordered suffix table, not a stemmer.
// First match wins. Covers the plurals that actually occur in ingredient
// lists; anything exotic stays as written.
var singularSuffixRules = []struct {
	suffix      string
	replacement string
}{
	{"ies", "y"},   // berries -> berry
	{"oes", "o"},   // tomatoes -> tomato
	{"sses", "ss"}, // glasses -> glass
	{"ches", "ch"}, // peaches -> peach
	{"shes", "sh"}, // radishes -> radish
	{"s", ""},      // eggs -> egg, olives -> olive
}

// Words that look plural but are not
var notPlural = map[string]bool{
	"molasses":   true,
	"couscous":   true,
	"hummus":     true,
	"asparagus":  true,
	"swiss":      true,
	"watercress": true,
}

// CanonicalizeName reduces free-form ingredient text to the lowercase,
// singular lookup key used for pantry stock and substitutions:
// "Cherry Tomatoes (halved)" -> "cherry tomato".
func CanonicalizeName(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = stripParentheticals(text)
	text = strings.Trim(text, " ,.;:-")

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	// Only the head noun gets singularized; "cherry tomatoes" must not
	// become "cherry tomatoe"
	last := words[len(words)-1]
	words[len(words)-1] = singularize(last)

	return strings.Join(words, " ")
}

// stripParentheticals removes "(chopped)", "(about 2 cups)" style asides
func stripParentheticals(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func singularize(word string) string {
	if notPlural[word] || len(word) < 4 {
		return word
	}
	if strings.HasSuffix(word, "ss") {
		return word
	}
	for _, rule := range singularSuffixRules {
		if strings.HasSuffix(word, rule.suffix) && len(word) > len(rule.suffix)+1 {
			return word[:len(word)-len(rule.suffix)] + rule.replacement
		}
	}
	return word
}

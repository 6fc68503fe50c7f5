// internal/cooklang/cooklang.go
package cooklang

import (
	"regexp"
	"strings"
)

// IngredientRef is one distinct ingredient referenced by a recipe.
// Amount and Unit are only set when the spec parsed cleanly; RawSpec
// keeps the original text between the braces for display fallback.
type IngredientRef struct {
	Name    string
	Amount  string
	Unit    string
	RawSpec string
}

// TimerRef holds the raw spec of a ~{...} timer occurrence.
type TimerRef struct {
	RawSpec string
}

// Tokens is the result of scanning one recipe's markup.
// IngredientOrder preserves first-occurrence order so that downstream
// rendering is deterministic; Ingredients is keyed by exact name.
type Tokens struct {
	Ingredients     map[string]IngredientRef
	IngredientOrder []string
	Equipment       map[string]struct{}
	Timers          []TimerRef
}

var (
	ingredientRe = regexp.MustCompile(`@([^@#~{}]+?)\{([^{}]*)\}`)
	equipmentRe  = regexp.MustCompile(`#([^@#~{}]+?)\{([^{}]*)\}`)
	timerRe      = regexp.MustCompile(`~\{([^{}]*)\}`)
	amountRe     = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)%(.*)$`)
	digitRe      = regexp.MustCompile(`^\d`)
)

// Tokenize extracts ingredient, cookware and timer references from raw
// recipe markup. Malformed directives are simply not matched; the scan
// never fails.
func Tokenize(raw string) Tokens {
	t := Tokens{
		Ingredients: make(map[string]IngredientRef),
		Equipment:   make(map[string]struct{}),
	}

	for _, m := range ingredientRe.FindAllStringSubmatch(raw, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		spec := strings.TrimSpace(m[2])
		amount, unit := splitSpec(spec)
		ref := IngredientRef{Name: name, Amount: amount, Unit: unit, RawSpec: spec}

		if prev, ok := t.Ingredients[name]; ok {
			// First occurrence wins unless a later one supplies a numeric
			// amount while the stored one lacks it.
			if prev.Amount == "" && amount != "" {
				t.Ingredients[name] = ref
			}
			continue
		}
		t.Ingredients[name] = ref
		t.IngredientOrder = append(t.IngredientOrder, name)
	}

	for _, m := range equipmentRe.FindAllStringSubmatch(raw, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		t.Equipment[name] = struct{}{}
	}

	for _, m := range timerRe.FindAllStringSubmatch(raw, -1) {
		t.Timers = append(t.Timers, TimerRef{RawSpec: strings.TrimSpace(m[1])})
	}

	return t
}

// splitSpec parses an ingredient spec into amount and unit.
// "250%g" yields ("250", "g"); a spec starting with a digit but without
// a '%' separator is taken whole as the amount; anything else parses to
// nothing and the caller falls back to the raw spec.
func splitSpec(spec string) (amount, unit string) {
	if spec == "" {
		return "", ""
	}
	if m := amountRe.FindStringSubmatch(spec); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	if digitRe.MatchString(spec) {
		return spec, ""
	}
	return "", ""
}

// renderTimer converts a timer spec to display text: "10%minutes"
// becomes "10 minutes", anything else is passed through verbatim.
func renderTimer(spec string) string {
	if m := amountRe.FindStringSubmatch(spec); m != nil {
		return m[1] + " " + strings.TrimSpace(m[2])
	}
	return spec
}

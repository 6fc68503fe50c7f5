// internal/cooklang/format.go
package cooklang

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// wrapWidth is the column limit for step text in the report output.
const wrapWidth = 80

// noMatchMarker is emitted when no known ingredient occurs in a step.
const noMatchMarker = "[–]"

// Strategy controls how individual steps are rendered into the report.
// The report strategy emits per-step ingredient annotations; the plain
// strategy keeps only the step text.
type Strategy interface {
	Step(index int, lines []string, annotations []string) string
}

// StrategyFor maps a configuration value to a rendering strategy.
// Unknown values fall back to the annotated report.
func StrategyFor(name string) Strategy {
	if strings.EqualFold(strings.TrimSpace(name), "plain") {
		return plainStrategy{}
	}
	return reportStrategy{}
}

type reportStrategy struct{}

func (reportStrategy) Step(index int, lines []string, annotations []string) string {
	var b strings.Builder
	writeStepBody(&b, index, lines)
	b.WriteString("\n    ")
	if len(annotations) == 0 {
		b.WriteString(noMatchMarker)
	} else {
		b.WriteString("[" + strings.Join(annotations, "; ") + "]")
	}
	return b.String()
}

type plainStrategy struct{}

func (plainStrategy) Step(index int, lines []string, _ []string) string {
	var b strings.Builder
	writeStepBody(&b, index, lines)
	return b.String()
}

func writeStepBody(b *strings.Builder, index int, lines []string) {
	fmt.Fprintf(b, "%d. %s", index, lines[0])
	for _, cont := range lines[1:] {
		b.WriteString("\n    " + cont)
	}
}

// Format renders tokenized recipe markup into the annotated report
// document: an Ingredients section, a Cookware section and numbered
// Steps, in that order, with empty sections omitted.
func Format(raw string, t Tokens) string {
	return FormatWith(raw, t, reportStrategy{})
}

// FormatWith is Format with an explicit step rendering strategy.
func FormatWith(raw string, t Tokens, strat Strategy) string {
	steps := stepLines(raw, t)
	matchers := stepMatchers(t)

	var sections []string

	if len(t.Ingredients) > 0 {
		lines := make([]string, 0, len(t.Ingredients))
		for _, name := range t.IngredientOrder {
			lines = append(lines, ingredientLine(t.Ingredients[name]))
		}
		// Sorted by the full rendered line, not the raw name.
		sort.Strings(lines)
		sections = append(sections, "## Ingredients\n\n"+strings.Join(lines, "\n"))
	}

	if len(t.Equipment) > 0 {
		names := make([]string, 0, len(t.Equipment))
		for name := range t.Equipment {
			names = append(names, name)
		}
		sort.Strings(names)
		for i, name := range names {
			names[i] = "- " + name
		}
		sections = append(sections, "## Cookware\n\n"+strings.Join(names, "\n"))
	}

	if len(steps) > 0 {
		rendered := make([]string, 0, len(steps))
		for i, text := range steps {
			var annotations []string
			for j, name := range t.IngredientOrder {
				if matchers[j].MatchString(text) {
					annotations = append(annotations, annotation(t.Ingredients[name]))
				}
			}
			rendered = append(rendered, strat.Step(i+1, wrap(text, wrapWidth), annotations))
		}
		sections = append(sections, "## Steps\n\n"+strings.Join(rendered, "\n\n"))
	}

	if len(sections) == 0 {
		return ""
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// stepLines strips frontmatter, substitutes markup with plain names and
// returns one step text per remaining non-empty line. Lines without any
// markup pass through unchanged as plain prose.
func stepLines(raw string, t Tokens) []string {
	_, body := ParseFrontmatter(raw)
	var steps []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		steps = append(steps, substitute(line))
	}
	return steps
}

// substitute replaces every markup occurrence in a line with its plain
// display text.
func substitute(line string) string {
	line = ingredientRe.ReplaceAllStringFunc(line, func(s string) string {
		m := ingredientRe.FindStringSubmatch(s)
		return strings.TrimSpace(m[1])
	})
	line = equipmentRe.ReplaceAllStringFunc(line, func(s string) string {
		m := equipmentRe.FindStringSubmatch(s)
		return strings.TrimSpace(m[1])
	})
	line = timerRe.ReplaceAllStringFunc(line, func(s string) string {
		m := timerRe.FindStringSubmatch(s)
		return renderTimer(strings.TrimSpace(m[1]))
	})
	return line
}

// stepMatchers precompiles a case-insensitive whole-word pattern per
// ingredient, aligned with IngredientOrder.
func stepMatchers(t Tokens) []*regexp.Regexp {
	matchers := make([]*regexp.Regexp, len(t.IngredientOrder))
	for i, name := range t.IngredientOrder {
		matchers[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	}
	return matchers
}

func ingredientLine(ref IngredientRef) string {
	switch {
	case ref.Amount != "" && ref.Unit != "":
		return "- " + ref.Amount + " " + ref.Unit + " " + ref.Name
	case ref.Amount != "":
		return "- " + ref.Amount + " " + ref.Name
	case ref.RawSpec != "":
		return "- " + ref.Name + " (" + ref.RawSpec + ")"
	default:
		return "- " + ref.Name
	}
}

func annotation(ref IngredientRef) string {
	switch {
	case ref.Amount != "" && ref.Unit != "":
		return ref.Name + ": " + ref.Amount + " " + ref.Unit
	case ref.Amount != "":
		return ref.Name + ": " + ref.Amount
	default:
		return ref.Name
	}
}

// wrap word-wraps text to the given width, breaking at the latest space
// boundary that keeps each line within the limit. A single word longer
// than the limit stays on its own line unbroken.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= width {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	return append(lines, current)
}

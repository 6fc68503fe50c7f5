// internal/recipe/recipe.go
package recipe

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"

	"forkful/internal/util"
)

// Record is the strongly-typed form of one parsed recipe.
type Record struct {
	Filename     string
	Slug         string
	Title        string
	Tags         []string
	Categories   []string
	Servings     int // 0 when unknown
	PrepTime     string
	CookTime     string
	Ingredients  []string
	Instructions []string
	Equipment    []string
	RawMarkdown  string
}

// section is the state of the line scanner. A recognized header always
// moves the scanner into the matching section, ending the previous one.
type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionEquipment
	sectionSteps
)

var (
	headerRe   = regexp.MustCompile(`^#+\s*(.+?)\s*$`)
	bulletRe   = regexp.MustCompile(`^[-*+]\s+(.*)$`)
	numberedRe = regexp.MustCompile(`^(\d+)[.)]\s*(.*)$`)

	ingredientsHeaderRe = regexp.MustCompile(`(?i)^ingredients?$`)
	// The formatter emits "Cookware"; external documents commonly say
	// "Equipment". Both land in the same section.
	equipmentHeaderRe = regexp.MustCompile(`(?i)^(equipment|cookware)$`)
	stepsHeaderRe     = regexp.MustCompile(`(?i)^(steps?|instructions?|directions?)$`)

	// Numbered lines whose content starts with one of these keys are
	// stray metadata, not cooking steps. The list covers the keys the
	// frontmatter layer knows about; anything else passes through as a
	// step (see the flat key:value regression test).
	metadataKeyRe = regexp.MustCompile(`(?i)^(title|author|servings?|tags?|categor(?:y|ies)|course|cuisine|source|description|prep[ _]?time|cook[ _]?time|time)\s*:`)

	unitKeywordRe = regexp.MustCompile(`(?i)\b(cups?|tbsp|tsp|oz|lbs?|g|kg|ml|l)\b`)
	numberRe      = regexp.MustCompile(`\d+`)
)

// Parse rebuilds a Record from formatted (or externally produced)
// markdown plus the frontmatter already extracted upstream. Metadata
// precedence is frontmatter first, then a ---- delimited block inside
// the body, so inline overrides win.
func Parse(markdown string, meta map[string]string, path string) Record {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	rec := Record{
		Filename:    base,
		Slug:        util.Slugify(stem),
		RawMarkdown: markdown,
	}

	applyMeta(&rec, meta)

	body, hadBlock := splitInlineMeta(&rec, markdown)

	if !hadBlock && rec.Title == "" {
		name := strings.ReplaceAll(strings.ReplaceAll(stem, "-", " "), "_", " ")
		rec.Title = util.TitleCase(name)
	}

	scanSections(&rec, body)

	if len(rec.Ingredients) == 0 && len(rec.Instructions) == 0 {
		classifyByKeyword(&rec, body)
	}

	return rec
}

// splitInlineMeta peels a leading YAML block off the body and applies
// its values over whatever the upstream frontmatter already set.
func splitInlineMeta(rec *Record, markdown string) (body string, hadBlock bool) {
	var inline map[string]any
	rest, err := frontmatter.Parse(strings.NewReader(markdown), &inline)
	if err != nil || inline == nil {
		return markdown, false
	}

	meta := make(map[string]string, len(inline)*2)
	for key, value := range inline {
		key = strings.ToLower(strings.TrimSpace(key))
		text := flattenValue(value)
		meta[key] = text
		meta[strings.ReplaceAll(key, " ", "_")] = text
	}
	applyMeta(rec, meta)
	return string(rest), true
}

// applyMeta copies recognized keys from a metadata map onto the record.
// Only keys present in the map overwrite; list fields replace wholesale.
func applyMeta(rec *Record, meta map[string]string) {
	if meta == nil {
		return
	}
	if v, ok := meta["title"]; ok && v != "" {
		rec.Title = v
	}
	if v, ok := meta["tags"]; ok && v != "" {
		rec.Tags = normalizeList(splitList(v))
	}
	if v, ok := lookupAny(meta, "categories", "category", "course"); ok {
		rec.Categories = normalizeList(splitList(v))
	}
	if v, ok := lookupAny(meta, "servings", "serves", "yield"); ok {
		if n := numberRe.FindString(v); n != "" {
			rec.Servings, _ = strconv.Atoi(n)
		}
	}
	if v, ok := lookupAny(meta, "prep_time", "prep time"); ok && v != "" {
		rec.PrepTime = v
	}
	if v, ok := lookupAny(meta, "cook_time", "cook time", "time"); ok && v != "" {
		rec.CookTime = v
	}
}

func lookupAny(meta map[string]string, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := meta[key]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// scanSections runs the section state machine over the body lines.
func scanSections(rec *Record, body string) {
	cur := sectionNone
	var step []string

	flush := func() {
		if len(step) > 0 {
			if text := strings.TrimSpace(strings.Join(step, " ")); text != "" {
				rec.Instructions = append(rec.Instructions, text)
			}
		}
		step = nil
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		if m := headerRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			switch {
			case ingredientsHeaderRe.MatchString(m[1]):
				cur = sectionIngredients
			case equipmentHeaderRe.MatchString(m[1]):
				cur = sectionEquipment
			case stepsHeaderRe.MatchString(m[1]):
				cur = sectionSteps
			}
			// Unrecognized headers leave the current section in place.
			continue
		}

		switch cur {
		case sectionIngredients:
			if m := bulletRe.FindStringSubmatch(trimmed); m != nil {
				rec.Ingredients = append(rec.Ingredients, strings.TrimSpace(m[1]))
			}
		case sectionEquipment:
			if m := bulletRe.FindStringSubmatch(trimmed); m != nil {
				rec.Equipment = append(rec.Equipment, strings.TrimSpace(m[1]))
			}
		case sectionSteps:
			if strings.HasPrefix(trimmed, "[") {
				// Inline annotation line: ends the step, never part of it.
				flush()
				continue
			}
			if m := numberedRe.FindStringSubmatch(trimmed); m != nil {
				flush()
				if metadataKeyRe.MatchString(m[2]) {
					continue
				}
				step = []string{strings.TrimSpace(m[2])}
				continue
			}
			if len(step) > 0 {
				step = append(step, trimmed)
			}
		}
	}
	flush()
}

// classifyByKeyword is the fallback for documents without recognizable
// sections: every bullet or numbered line is an ingredient when it
// mentions a measurement unit, otherwise an instruction.
func classifyByKeyword(rec *Record, body string) {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		var text string
		if m := bulletRe.FindStringSubmatch(trimmed); m != nil {
			text = strings.TrimSpace(m[1])
		} else if m := numberedRe.FindStringSubmatch(trimmed); m != nil {
			text = strings.TrimSpace(m[2])
		} else {
			continue
		}
		if text == "" {
			continue
		}
		if unitKeywordRe.MatchString(text) {
			rec.Ingredients = append(rec.Ingredients, text)
		} else {
			rec.Instructions = append(rec.Instructions, text)
		}
	}
}

// splitList splits a comma-separated value into trimmed parts.
func splitList(value string) []string {
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// normalizeList deduplicates case-insensitively, keeping the first-seen
// entry title-cased for display.
func normalizeList(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, value := range values {
		key := strings.ToLower(value)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, util.TitleCase(value))
	}
	return out
}

func flattenValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, flattenValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

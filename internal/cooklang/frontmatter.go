// internal/cooklang/frontmatter.go
package cooklang

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var metaLineRe = regexp.MustCompile(`^>>\s*([^:]+?)\s*:\s*(.*)$`)

// ParseFrontmatter extracts recipe metadata from a leading ----delimited
// YAML block and from ">> key: value" lines, returning the metadata map
// and the body with both forms removed.
//
// Keys are lowercased; each key is stored twice, once with spaces
// preserved and once with spaces replaced by underscores, so lookups
// work with either convention. A duplicate key overwrites the earlier
// value. Values keep their text form with matching surrounding quotes
// stripped.
func ParseFrontmatter(raw string) (map[string]string, string) {
	meta := make(map[string]string)
	body := raw

	if block, rest, ok := splitYAMLBlock(raw); ok {
		var parsed map[string]any
		// Best effort: a block that is not valid YAML is dropped rather
		// than failing the recipe.
		if err := yaml.Unmarshal([]byte(block), &parsed); err == nil {
			for key, value := range parsed {
				setMeta(meta, key, metaValueString(value))
			}
		}
		body = rest
	}

	var kept []string
	for _, line := range strings.Split(body, "\n") {
		if m := metaLineRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			setMeta(meta, m[1], m[2])
			continue
		}
		kept = append(kept, line)
	}

	return meta, strings.Join(kept, "\n")
}

// splitYAMLBlock splits a leading "---\n...\n---" block off the raw
// text. ok is false when no complete block starts the file.
func splitYAMLBlock(raw string) (block, rest string, ok bool) {
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", raw, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), true
		}
	}
	return "", raw, false
}

func setMeta(meta map[string]string, key, value string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}
	value = stripQuotes(strings.TrimSpace(value))
	meta[key] = value
	meta[strings.ReplaceAll(key, " ", "_")] = value
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// metaValueString renders a YAML value into the flat string form the
// metadata map carries. Lists join with ", " so that tag lists survive
// the round trip through string values.
func metaValueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, metaValueString(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

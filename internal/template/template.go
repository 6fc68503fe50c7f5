// internal/template/template.go
//
// Package template implements the minimal block template language used
// by the site themes: {{var}}, {{&var}}, {{#each arr}}...{{/each}} and
// {{#if cond}}...{{else}}...{{/if}}. Blocks are located by a
// depth-counting scan rather than a pre-parsed tree, and block bodies
// are rendered by recursive invocation, so arbitrary nesting resolves
// correctly.
package template

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// maxBlockExpansions bounds back-to-back block expansion so a malformed
// or adversarial template cannot rescan forever.
const maxBlockExpansions = 10000

const (
	eachOpen  = "{{#each"
	eachClose = "{{/each}}"
	ifOpen    = "{{#if"
	ifClose   = "{{/if}}"
	elseTag   = "{{else}}"
)

var (
	rawVarRe     = regexp.MustCompile(`\{\{&\s*([^{}]+?)\s*\}\}`)
	escapedVarRe = regexp.MustCompile(`\{\{\s*([^#/&{}\s][^{}]*?)\s*\}\}`)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
)

// Context is a layered variable scope: lookups hit the overlay first,
// then walk outward. Each {{#each}} iteration pushes a new layer.
type Context struct {
	parent *Context
	values map[string]any
}

// NewContext wraps a flat data mapping into a root context.
func NewContext(values map[string]any) *Context {
	return &Context{values: values}
}

func (c *Context) child(values map[string]any) *Context {
	return &Context{parent: c, values: values}
}

// Lookup resolves a key, innermost layer first.
func (c *Context) Lookup(key string) (any, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if v, ok := ctx.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Render evaluates a template against a data mapping. Processing order
// is fixed: each blocks, then if blocks, then raw interpolation, then
// escaped interpolation.
func Render(tmpl string, data map[string]any) string {
	r := &renderer{budget: maxBlockExpansions}
	return r.render(tmpl, NewContext(data))
}

type renderer struct {
	budget int
}

func (r *renderer) render(tmpl string, ctx *Context) string {
	out := r.renderEach(tmpl, ctx)
	out = r.renderIf(out, ctx)
	out = renderRaw(out, ctx)
	return renderEscaped(out, ctx)
}

// renderEach expands every {{#each key}}...{{/each}} block, matching
// the close tag by depth so nested each blocks stay with their opener.
func (r *renderer) renderEach(tmpl string, ctx *Context) string {
	var b strings.Builder
	for {
		start := strings.Index(tmpl, eachOpen)
		if start < 0 || r.budget <= 0 {
			break
		}
		r.budget--

		tagEnd := strings.Index(tmpl[start:], "}}")
		if tagEnd < 0 {
			break
		}
		tagEnd += start + 2
		key := strings.TrimSpace(tmpl[start+len(eachOpen) : tagEnd-2])

		closeAt := findMatching(tmpl[tagEnd:], eachOpen, eachClose)
		if closeAt < 0 {
			// No matching close tag: pass the opener through unchanged.
			b.WriteString(tmpl[:tagEnd])
			tmpl = tmpl[tagEnd:]
			continue
		}

		b.WriteString(tmpl[:start])
		body := tmpl[tagEnd : tagEnd+closeAt]
		tmpl = tmpl[tagEnd+closeAt+len(eachClose):]

		value, _ := ctx.Lookup(key)
		for i, item := range listOf(value) {
			b.WriteString(r.render(body, iterationContext(ctx, item, i)))
		}
	}
	b.WriteString(tmpl)
	return b.String()
}

// renderIf expands every {{#if key}}...{{else}}...{{/if}} block. The
// else belonging to the current block is the one at depth zero relative
// to it; else tags of nested blocks are skipped.
func (r *renderer) renderIf(tmpl string, ctx *Context) string {
	var b strings.Builder
	for {
		start := strings.Index(tmpl, ifOpen)
		if start < 0 || r.budget <= 0 {
			break
		}
		r.budget--

		tagEnd := strings.Index(tmpl[start:], "}}")
		if tagEnd < 0 {
			break
		}
		tagEnd += start + 2
		key := strings.TrimSpace(tmpl[start+len(ifOpen) : tagEnd-2])

		closeAt := findMatching(tmpl[tagEnd:], ifOpen, ifClose)
		if closeAt < 0 {
			b.WriteString(tmpl[:tagEnd])
			tmpl = tmpl[tagEnd:]
			continue
		}

		b.WriteString(tmpl[:start])
		body := tmpl[tagEnd : tagEnd+closeAt]
		tmpl = tmpl[tagEnd+closeAt+len(ifClose):]

		thenBody, elseBody := splitElse(body)
		value, ok := ctx.Lookup(key)
		if truthy(value, ok) {
			b.WriteString(r.render(thenBody, ctx))
		} else {
			b.WriteString(r.render(elseBody, ctx))
		}
	}
	b.WriteString(tmpl)
	return b.String()
}

// findMatching returns the index within s of the close tag matching an
// already-consumed opener, treating further openers as depth increments.
// Returns -1 when the block is unterminated.
func findMatching(s, open, close string) int {
	depth := 1
	offset := 0
	for {
		nextOpen := strings.Index(s[offset:], open)
		nextClose := strings.Index(s[offset:], close)
		if nextClose < 0 {
			return -1
		}
		if nextOpen >= 0 && nextOpen < nextClose {
			depth++
			offset += nextOpen + len(open)
			continue
		}
		depth--
		if depth == 0 {
			return offset + nextClose
		}
		offset += nextClose + len(close)
	}
}

// splitElse finds the {{else}} at depth zero of an if body, skipping
// else tags owned by nested if blocks.
func splitElse(body string) (thenBody, elseBody string) {
	depth := 0
	offset := 0
	for {
		nextOpen := strings.Index(body[offset:], ifOpen)
		nextClose := strings.Index(body[offset:], ifClose)
		nextElse := strings.Index(body[offset:], elseTag)
		if nextElse < 0 {
			return body, ""
		}
		if nextOpen >= 0 && nextOpen < nextElse && (nextClose < 0 || nextOpen < nextClose) {
			depth++
			offset += nextOpen + len(ifOpen)
			continue
		}
		if nextClose >= 0 && nextClose < nextElse {
			if depth > 0 {
				depth--
			}
			offset += nextClose + len(ifClose)
			continue
		}
		if depth == 0 {
			at := offset + nextElse
			return body[:at], body[at+len(elseTag):]
		}
		offset += nextElse + len(elseTag)
	}
}

// iterationContext builds the scope for one {{#each}} element: the
// element's own fields (when it is a mapping) overlaid on the outer
// scope, plus "this" and the 1-based "@index".
func iterationContext(outer *Context, item any, index int) *Context {
	var overlay map[string]any
	if fields, ok := item.(map[string]any); ok {
		overlay = make(map[string]any, len(fields)+2)
		for k, v := range fields {
			overlay[k] = v
		}
	} else {
		overlay = make(map[string]any, 2)
	}
	overlay["this"] = item
	overlay["@index"] = index + 1
	return outer.child(overlay)
}

func renderRaw(tmpl string, ctx *Context) string {
	return rawVarRe.ReplaceAllStringFunc(tmpl, func(tag string) string {
		key := rawVarRe.FindStringSubmatch(tag)[1]
		value, ok := ctx.Lookup(key)
		if !ok {
			return ""
		}
		return stringify(value)
	})
}

func renderEscaped(tmpl string, ctx *Context) string {
	return escapedVarRe.ReplaceAllStringFunc(tmpl, func(tag string) string {
		key := escapedVarRe.FindStringSubmatch(tag)[1]
		if key == "else" {
			// An else with no enclosing if is a malformed block tag,
			// not a variable; pass it through like other orphan tags.
			return tag
		}
		value, ok := ctx.Lookup(key)
		if !ok {
			return ""
		}
		return htmlEscaper.Replace(stringify(value))
	})
}

// stringify converts a scalar to text. Mappings and lists render as
// empty string, never as a stringified object.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return ""
	}
	return fmt.Sprint(value)
}

// truthy: lists are truthy iff non-empty; everything else is truthy
// unless missing, nil, false or the empty string.
func truthy(value any, ok bool) bool {
	if !ok || value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	}
	return true
}

// listOf coerces a bound value into a slice of elements; non-list
// values yield zero iterations.
func listOf(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items
}

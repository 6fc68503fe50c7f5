package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forkful/internal/cooklang"
)

const formattedDoc = `## Ingredients

- 150 g sugar
- 250 g flour

## Cookware

- bowl

## Steps

1. Mix flour and sugar in a bowl.
    [flour: 250 g; sugar: 150 g]

2. Bake until golden.
    [–]
`

func TestParseFormattedDocument(t *testing.T) {
	rec := Parse(formattedDoc, map[string]string{"title": "Plain Cake"}, "plain-cake.cook")

	assert.Equal(t, "Plain Cake", rec.Title)
	assert.Equal(t, "plain-cake", rec.Slug)
	assert.Equal(t, "plain-cake.cook", rec.Filename)
	assert.Equal(t, []string{"150 g sugar", "250 g flour"}, rec.Ingredients)
	assert.Equal(t, []string{"bowl"}, rec.Equipment)
	assert.Equal(t, []string{"Mix flour and sugar in a bowl.", "Bake until golden."}, rec.Instructions)
}

func TestParseInlineBlockOverridesFrontmatter(t *testing.T) {
	markdown := "---\ntitle: Inline Title\nservings: 8\n---\n## Steps\n\n1. Do the thing.\n"
	meta := map[string]string{"title": "Outer Title", "servings": "4", "cook_time": "1 hour"}

	rec := Parse(markdown, meta, "thing.md")

	assert.Equal(t, "Inline Title", rec.Title, "inline values win")
	assert.Equal(t, 8, rec.Servings)
	assert.Equal(t, "1 hour", rec.CookTime, "keys only the frontmatter sets survive")
}

func TestParseTitleFallsBackToFilename(t *testing.T) {
	rec := Parse("## Steps\n\n1. Stir.\n", nil, "recipes/chocolate_lava-cake.cook")
	assert.Equal(t, "Chocolate Lava Cake", rec.Title)
}

func TestParseTitleNoFallbackWhenBlockPresent(t *testing.T) {
	rec := Parse("---\nauthor: Someone\n---\n## Steps\n\n1. Stir.\n", nil, "mystery.cook")
	assert.Equal(t, "", rec.Title)
}

func TestParseSectionHeaderVariants(t *testing.T) {
	tests := []struct {
		header string
		field  func(Record) []string
	}{
		{"# Ingredient", func(r Record) []string { return r.Ingredients }},
		{"### INGREDIENTS", func(r Record) []string { return r.Ingredients }},
		{"## Equipment", func(r Record) []string { return r.Equipment }},
		{"## Cookware", func(r Record) []string { return r.Equipment }},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			rec := Parse(tt.header+"\n\n- item one\n", nil, "x.md")
			assert.Equal(t, []string{"item one"}, tt.field(rec))
		})
	}

	for _, header := range []string{"## Steps", "## Instructions", "## Directions"} {
		t.Run(header, func(t *testing.T) {
			rec := Parse(header+"\n\n1. item one\n", nil, "x.md")
			assert.Equal(t, []string{"item one"}, rec.Instructions)
		})
	}
}

func TestParseMultiLineStep(t *testing.T) {
	markdown := "## Steps\n\n1. Knead the dough\nuntil smooth and elastic.\n\n2. Rest it.\n"
	rec := Parse(markdown, nil, "bread.md")

	require.Len(t, rec.Instructions, 2)
	assert.Equal(t, "Knead the dough until smooth and elastic.", rec.Instructions[0])
}

func TestParseAnnotationLineTerminatesStep(t *testing.T) {
	markdown := "## Steps\n\n1. Mix everything.\n    [flour: 250 g]\nstray trailing prose\n"
	rec := Parse(markdown, nil, "x.md")

	// The annotation ends the step; the stray line has no step to join.
	assert.Equal(t, []string{"Mix everything."}, rec.Instructions)
}

func TestParseDiscardsMetadataSteps(t *testing.T) {
	markdown := "## Steps\n\n1. servings: 4\n\n2. prep time: 10 min\n\n3. Actually cook.\n"
	rec := Parse(markdown, nil, "x.md")

	assert.Equal(t, []string{"Actually cook."}, rec.Instructions)
}

func TestParseFlatMetadataLinePassesThrough(t *testing.T) {
	// Known limitation, kept on purpose: a flat key:value line the
	// skip-list does not know about stays a numbered step.
	markdown := "## Steps\n\n1. favorite: yes\n    [–]\n"
	rec := Parse(markdown, nil, "x.md")

	assert.Equal(t, []string{"favorite: yes"}, rec.Instructions)
}

func TestParseKeywordFallbackClassification(t *testing.T) {
	markdown := "- 2 cups flour\n- 1 tsp vanilla\n- Mix until combined\n1. Serve warm\n"
	rec := Parse(markdown, nil, "x.md")

	assert.Equal(t, []string{"2 cups flour", "1 tsp vanilla"}, rec.Ingredients)
	assert.Equal(t, []string{"Mix until combined", "Serve warm"}, rec.Instructions)
}

func TestParseTagsAndCategories(t *testing.T) {
	meta := map[string]string{
		"tags":       "breakfast, BREAKFAST, quick bread",
		"categories": "Baking",
	}
	rec := Parse("## Steps\n\n1. Go.\n", meta, "x.cook")

	assert.Equal(t, []string{"Breakfast", "Quick Bread"}, rec.Tags)
	assert.Equal(t, []string{"Baking"}, rec.Categories)
}

func TestParseServingsExtractsNumber(t *testing.T) {
	rec := Parse("", map[string]string{"servings": "about 6 people"}, "x.cook")
	assert.Equal(t, 6, rec.Servings)
}

func TestParseIdempotence(t *testing.T) {
	raw := ">> title: Scones\n>> tags: tea, baking\n\nRub @butter{50%g} into @flour{200%g} with a #bowl{}.\n\nBake for ~{12%minutes}.\n"
	meta, body := cooklang.ParseFrontmatter(raw)
	formatted := cooklang.Format(body, cooklang.Tokenize(body))

	first := Parse(formatted, meta, "scones.cook")
	second := Parse(formatted, meta, "scones.cook")
	assert.Equal(t, first, second)

	// And the record survives a reparse of its own raw markdown.
	reparsed := Parse(first.RawMarkdown, meta, "scones.cook")
	assert.Equal(t, first, reparsed)
}

func TestParseScenarioAnnotations(t *testing.T) {
	raw := "Mix @flour{250%g} and @sugar{150%g} in a bowl.\n"
	formatted := cooklang.Format(raw, cooklang.Tokenize(raw))

	require.True(t, strings.Contains(formatted, "[flour: 250 g; sugar: 150 g]"),
		"formatted output was:\n%s", formatted)

	rec := Parse(formatted, nil, "mix.cook")
	assert.Equal(t, []string{"Mix flour and sugar in a bowl."}, rec.Instructions)
}

package builder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forkful/internal/config"
)

const testRecipe = `>> title: Pancakes
>> tags: breakfast, classic
>> categories: Breakfast

Whisk @flour{250%g} and @sugar{2%tbsp} in a #bowl{}.

Rest the batter for ~{10%minutes}.
`

func testTheme() *Theme {
	return &Theme{
		Recipe:   "<html><body><h1>{{title}}</h1>{{&content}}</body></html>",
		Index:    "<html><body>{{#each recipes}}<a href=\"{{url}}\">{{title}}</a>{{/each}}</body></html>",
		Category: "<html><body><h1>{{category}}</h1>{{#each recipes}}{{title}};{{/each}}</body></html>",
	}
}

func testSite(t *testing.T) (siteDir, outDir string) {
	t.Helper()
	siteDir = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(siteDir, "recipes"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(siteDir, "static", "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "recipes", "pancakes.cook"), []byte(testRecipe), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "static", "css", "style.css"), []byte("body{}"), 0644))
	return siteDir, filepath.Join(siteDir, "public")
}

func TestBuildSite(t *testing.T) {
	siteDir, outDir := testSite(t)
	site := config.SiteConfig{Title: "Test Kitchen", Author: "Tester"}

	count, err := BuildSite(outDir, filepath.Join(siteDir, "recipes"), filepath.Join(siteDir, "static"), site, testTheme(), BuildOptions{})
	require.NoError(t, err)
	// One recipe page, the index and one category page.
	assert.Equal(t, 3, count)

	recipePage, err := os.ReadFile(filepath.Join(outDir, "recipes", "pancakes.html"))
	require.NoError(t, err)
	assert.Contains(t, string(recipePage), "<h1>Pancakes</h1>")
	assert.Contains(t, string(recipePage), "Ingredients")
	assert.Contains(t, string(recipePage), "250 g flour")

	indexPage, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(indexPage), `<a href="recipes/pancakes.html">Pancakes</a>`)

	categoryPage, err := os.ReadFile(filepath.Join(outDir, "categories", "breakfast.html"))
	require.NoError(t, err)
	assert.Contains(t, string(categoryPage), "<h1>Breakfast</h1>")
	assert.Contains(t, string(categoryPage), "Pancakes;")

	_, err = os.Stat(filepath.Join(outDir, "css", "style.css"))
	assert.NoError(t, err, "static assets are copied")
}

func TestBuildSiteSkipsBrokenRecipes(t *testing.T) {
	siteDir, outDir := testSite(t)
	// Not valid UTF-8: must be skipped, not fail the batch.
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "recipes", "broken.cook"), []byte{0xff, 0xfe, 0xfd}, 0644))

	count, err := BuildSite(outDir, filepath.Join(siteDir, "recipes"), filepath.Join(siteDir, "static"), config.SiteConfig{}, testTheme(), BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = os.Stat(filepath.Join(outDir, "recipes", "broken.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildSiteCleanDestination(t *testing.T) {
	siteDir, outDir := testSite(t)
	require.NoError(t, os.MkdirAll(outDir, 0755))
	stale := filepath.Join(outDir, "stale.html")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	_, err := BuildSite(outDir, filepath.Join(siteDir, "recipes"), filepath.Join(siteDir, "static"), config.SiteConfig{}, testTheme(), BuildOptions{CleanDestination: true})
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestBuildSiteIgnoresOtherExtensions(t *testing.T) {
	siteDir, outDir := testSite(t)
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "recipes", "notes.txt"), []byte("not a recipe"), 0644))

	count, err := BuildSite(outDir, filepath.Join(siteDir, "recipes"), filepath.Join(siteDir, "static"), config.SiteConfig{}, testTheme(), BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestBuildSiteExternalMarkdown(t *testing.T) {
	siteDir, outDir := testSite(t)
	external := "---\ntitle: Imported Stew\ncategories: Dinner\n---\n## Ingredients\n\n- 1 kg beef\n\n## Steps\n\n1. Simmer for hours.\n"
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "recipes", "stew.md"), []byte(external), 0644))

	_, err := BuildSite(outDir, filepath.Join(siteDir, "recipes"), filepath.Join(siteDir, "static"), config.SiteConfig{}, testTheme(), BuildOptions{})
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(outDir, "recipes", "stew.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Imported Stew")

	_, err = os.Stat(filepath.Join(outDir, "categories", "dinner.html"))
	assert.NoError(t, err)
}

func TestBuildSiteTitlelessBlockSuppressesFilenameTitle(t *testing.T) {
	siteDir, outDir := testSite(t)
	// The metadata block carries no title, so the record keeps an empty
	// one instead of falling back to the filename.
	external := "---\ncategories: Dinner\n---\n## Steps\n\n1. Simmer for hours.\n"
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "recipes", "braised-leeks.md"), []byte(external), 0644))

	_, err := BuildSite(outDir, filepath.Join(siteDir, "recipes"), filepath.Join(siteDir, "static"), config.SiteConfig{}, testTheme(), BuildOptions{})
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(outDir, "recipes", "braised-leeks.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(page), "Braised Leeks")
	assert.Contains(t, string(page), "Simmer for hours.")
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out, err := renderMarkdown("hello <script>alert(1)</script>", BuildOptions{})
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")

	out, err = renderMarkdown("hello <em>there</em>", BuildOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, "<em>there</em>")
}

func TestRenderMarkdownRewritesRecipeLinks(t *testing.T) {
	out, err := renderMarkdown("See [the sauce](sauce.cook) and [notes](notes.md).", BuildOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, `href="sauce.html"`)
	assert.Contains(t, out, `href="notes.html"`)
}

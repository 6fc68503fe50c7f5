package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forkful/internal/builder"
	"forkful/internal/config"
)

func TestCreateNewSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mysite")
	require.NoError(t, CreateNewSite(dir))

	for _, path := range []string{
		"site.yaml",
		"recipes/pancakes.cook",
		"static/css/style.css",
		"templates/kitchen/recipe.html",
		"templates/kitchen/index.html",
		"templates/kitchen/category.html",
		"archetypes/default.cook",
	} {
		_, err := os.Stat(filepath.Join(dir, path))
		assert.NoError(t, err, "expected %s to exist", path)
	}

	cfg, err := config.LoadSiteConfig(filepath.Join(dir, "site.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "kitchen", cfg.Template)
	assert.Equal(t, "report", cfg.Render)
}

func TestScaffoldedSiteBuilds(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mysite")
	require.NoError(t, CreateNewSite(dir))

	cfg, err := config.LoadSiteConfig(filepath.Join(dir, "site.yaml"))
	require.NoError(t, err)

	theme, err := builder.LoadTheme(filepath.Join(dir, "templates"), cfg.Template)
	require.NoError(t, err)

	outDir := filepath.Join(dir, "public")
	count, err := builder.BuildSite(outDir, filepath.Join(dir, "recipes"), filepath.Join(dir, "static"), cfg, theme, builder.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	page, err := os.ReadFile(filepath.Join(outDir, "recipes", "pancakes.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Pancakes")
	assert.Contains(t, string(page), "Serves 4")
}

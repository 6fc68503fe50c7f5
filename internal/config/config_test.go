package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSiteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	content := "title: Test Kitchen\nauthor: Tester\ntemplate: kitchen\nrender: plain\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadSiteConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Kitchen", cfg.Title)
	assert.Equal(t, "Tester", cfg.Author)
	assert.Equal(t, "kitchen", cfg.Template)
	assert.Equal(t, "plain", cfg.Render)
}

func TestLoadSiteConfigMissingFile(t *testing.T) {
	_, err := LoadSiteConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSiteConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: [unclosed"), 0644))

	_, err := LoadSiteConfig(path)
	assert.Error(t, err)
}

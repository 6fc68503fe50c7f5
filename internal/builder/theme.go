// internal/builder/theme.go
package builder

import (
	"fmt"
	"os"
	"path/filepath"
)

// Theme holds the raw page templates of one theme directory, written in
// the site's block template language.
type Theme struct {
	Recipe   string
	Index    string
	Category string
}

// LoadTheme reads the three page templates from templates/<name>/.
func LoadTheme(templateDir, name string) (*Theme, error) {
	dir := filepath.Join(templateDir, name)
	read := func(file string) (string, error) {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return "", fmt.Errorf("could not read template %s: %w", file, err)
		}
		return string(data), nil
	}

	theme := &Theme{}
	var err error
	if theme.Recipe, err = read("recipe.html"); err != nil {
		return nil, err
	}
	if theme.Index, err = read("index.html"); err != nil {
		return nil, err
	}
	if theme.Category, err = read("category.html"); err != nil {
		return nil, err
	}
	return theme, nil
}

// internal/builder/builder.go
package builder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"forkful/internal/config"
	"forkful/internal/cooklang"
	"forkful/internal/recipe"
	"forkful/internal/template"
	"forkful/internal/util"
)

type BuildOptions struct {
	CleanDestination bool
	Unsafe           bool
	Debug            bool
}

// page pairs a parsed recipe with its rendered HTML body.
type page struct {
	record recipe.Record
	html   string
}

// BuildSite runs the whole pipeline: every .cook and .md file under
// recipesDir becomes a recipe page, plus an index page and one page per
// category, written to outputDir. Static assets are copied last.
//
// A recipe that cannot be read or parsed is logged and skipped; the
// batch continues. Returns the number of pages generated.
func BuildSite(outputDir, recipesDir, staticDir string, site config.SiteConfig, theme *Theme, opts BuildOptions) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}

	if opts.CleanDestination {
		fmt.Println("Cleaning destination directory...")
		entries, err := os.ReadDir(outputDir)
		if err != nil {
			return 0, err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
				return 0, err
			}
		}
	}

	strategy := cooklang.StrategyFor(site.Render)

	var pages []page
	if err := filepath.Walk(recipesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(info.Name())
		if ext != ".cook" && ext != ".md" {
			return nil
		}

		p, loadErr := loadPage(path, strategy, opts)
		if loadErr != nil {
			// Per-recipe failures never abort the batch.
			fmt.Fprintf(os.Stderr, "⚠️  skipping %s: %v\n", path, loadErr)
			return nil
		}
		pages = append(pages, p)
		return nil
	}); err != nil {
		return 0, err
	}

	sort.Slice(pages, func(i, j int) bool {
		return strings.ToLower(pages[i].record.Title) < strings.ToLower(pages[j].record.Title)
	})

	pagesGenerated := 0
	for _, p := range pages {
		relPath := filepath.Join("recipes", p.record.Slug+".html")
		ctx := recipeContext(p, site, util.ComputeBaseHref(relPath))
		// Colliding slugs are not reconciled: last write wins.
		if err := writePage(filepath.Join(outputDir, relPath), theme.Recipe, ctx); err != nil {
			return 0, fmt.Errorf("failed to render page for %s: %w", p.record.Filename, err)
		}
		pagesGenerated++
	}

	if err := writePage(filepath.Join(outputDir, "index.html"), theme.Index, indexContext(pages, site)); err != nil {
		return 0, fmt.Errorf("failed to render index page: %w", err)
	}
	pagesGenerated++

	for name, members := range collectCategories(pages) {
		relPath := filepath.Join("categories", util.Slugify(name)+".html")
		ctx := categoryContext(name, members, site, util.ComputeBaseHref(relPath))
		if err := writePage(filepath.Join(outputDir, relPath), theme.Category, ctx); err != nil {
			return 0, fmt.Errorf("failed to render category page %s: %w", name, err)
		}
		pagesGenerated++
	}

	if err := copyStaticAssets(staticDir, outputDir); err != nil {
		return 0, err
	}
	return pagesGenerated, nil
}

// loadPage runs one source file through the pipeline: frontmatter
// split, tokenize+format for .cook sources, structured parse, HTML
// render.
func loadPage(path string, strategy cooklang.Strategy, opts BuildOptions) (page, error) {
	contentBytes, err := os.ReadFile(path)
	if err != nil {
		return page{}, fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(contentBytes) {
		return page{}, fmt.Errorf("content file is not valid UTF-8")
	}

	content := string(contentBytes)
	meta, body := cooklang.ParseFrontmatter(content)

	formatted := body
	// The parser does its own inline-block split, so .md sources get the
	// unstripped content: a ---- block with no title must still suppress
	// the filename-derived title.
	parseInput := content
	if filepath.Ext(path) == ".cook" {
		tokens := cooklang.Tokenize(body)
		formatted = cooklang.FormatWith(body, tokens, strategy)
		parseInput = formatted
	}

	rec := recipe.Parse(parseInput, meta, path)

	htmlOut, err := renderMarkdown(formatted, opts)
	if err != nil {
		return page{}, err
	}
	return page{record: rec, html: htmlOut}, nil
}

// collectCategories groups pages by category, deduplicating names
// case-insensitively while preserving the first-seen display form.
func collectCategories(pages []page) map[string][]page {
	display := make(map[string]string)
	groups := make(map[string][]page)
	for _, p := range pages {
		for _, category := range p.record.Categories {
			key := strings.ToLower(category)
			if _, ok := display[key]; !ok {
				display[key] = category
			}
			name := display[key]
			groups[name] = append(groups[name], p)
		}
	}
	return groups
}

// writePage renders a template against a context and writes the result.
func writePage(outPath, tmpl string, ctx map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(outPath, []byte(template.Render(tmpl, ctx)), 0644)
}

// copyStaticAssets copies files from the static directory to the output directory.
func copyStaticAssets(staticDir, outputDir string) error {
	// This map defines the file extensions that are considered "static assets".
	allowedExts := map[string]bool{
		".css": true, ".js": true, ".txt": true, ".svg": true,
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	}
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(staticDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !allowedExts[filepath.Ext(info.Name())] {
			return nil
		}

		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(outputDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		dst, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer dst.Close()
		_, err = io.Copy(dst, src)
		return err
	})
}

// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"forkful/internal/config"
	"forkful/internal/util"
)

// CreateNewSite scaffolds a new recipe site directory with a default
// theme, a sample recipe and an archetype for `forkful new`.
func CreateNewSite(name string) error {
	fmt.Println("Scaffolding new site in:", name)
	mkdir := func(path string) error { return os.MkdirAll(filepath.Join(name, path), 0755) }
	writeFile := func(path, content string) error {
		return os.WriteFile(filepath.Join(name, path), []byte(content), 0644)
	}
	dirs := []string{"recipes", "static/css", "templates/kitchen", "archetypes"}
	for _, dir := range dirs {
		if err := mkdir(dir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		"site.yaml":                       siteYamlContent,
		"recipes/pancakes.cook":           sampleRecipeContent,
		"static/css/style.css":            staticCssContent,
		"templates/kitchen/recipe.html":   recipeTemplateContent,
		"templates/kitchen/index.html":    indexTemplateContent,
		"templates/kitchen/category.html": categoryTemplateContent,
		"archetypes/default.cook":         archetypeDefaultContent,
	}
	for path, content := range files {
		if err := writeFile(path, content); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}
	fmt.Println("Site scaffolded. You can now:")
	fmt.Println("  cd", name)
	fmt.Println("  forkful gen")
	fmt.Println("  forkful serve")
	return nil
}

// CreateNewContent creates a new recipe file from the archetype.
func CreateNewContent(contentType, title, configPath string) error {
	slug := util.Slugify(title)
	site, err := config.LoadSiteConfig(configPath)
	if err != nil {
		return err
	}

	path := filepath.Join("recipes", contentType, slug+".cook")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	archetypePath := filepath.Join("archetypes", "default.cook")
	tmplBytes, err := os.ReadFile(archetypePath)
	if err != nil {
		return fmt.Errorf("could not read archetype file %s: %w", archetypePath, err)
	}

	tmpl, err := template.New("archetype").Parse(string(tmplBytes))
	if err != nil {
		return fmt.Errorf("failed to parse archetype file %s: %w", archetypePath, err)
	}

	data := struct {
		Title    string
		Author   string
		Category string
	}{
		Title:    title,
		Author:   site.Author,
		Category: util.TitleCase(strings.ReplaceAll(contentType, "-", " ")),
	}

	var output bytes.Buffer
	if err := tmpl.Execute(&output, data); err != nil {
		return fmt.Errorf("failed to execute archetype template: %w", err)
	}

	if err := os.WriteFile(path, output.Bytes(), 0644); err != nil {
		return err
	}

	fmt.Println("Created:", path)
	return nil
}

// Constants for default file contents

const siteYamlContent = `title: My Recipe Box
author: Your Name
baseurl: /
description: A recipe collection powered by forkful.
template: kitchen
render: report
`

const sampleRecipeContent = `>> title: Pancakes
>> tags: breakfast, classic
>> categories: Breakfast
>> servings: 4

Whisk @flour{250%g}, @sugar{2%tbsp} and @baking powder{2%tsp} in a #bowl{}.

Beat in @milk{300%ml} and @eggs{2}, then rest the batter for ~{10%minutes}.

Cook spoonfuls in a hot #frying pan{} until golden on both sides.
`

const archetypeDefaultContent = `>> title: {{.Title}}
>> author: {{.Author}}
>> categories: {{.Category}}
>> tags:

Describe the first step here, marking @ingredients{} and #cookware{} as you go.
`

const staticCssContent = `body {
  font-family: sans-serif;
  max-width: 700px;
  margin: 2em auto;
  padding: 0 1em;
  line-height: 1.6;
  color: #222;
  background: #fdfdfd;
}
header { margin-bottom: 2em; }
.site-name { font-size: 0.9em; color: #777; font-style: italic; }
.recipe-meta { font-size: 0.9em; color: #555; margin-bottom: 1.5em; }
.recipe-meta span { margin-right: 1em; }
.tag { background: #eee; border-radius: 3px; padding: 0 0.4em; margin-right: 0.3em; font-size: 0.85em; }
main { margin-bottom: 3em; }
footer { text-align: center; font-size: 0.9em; color: #555; }
footer nav a { color: #444; text-decoration: none; margin: 0 0.5em; }
ul { margin-left: 1.2em; padding-left: 1.2em; list-style-type: disc; }
li { margin-bottom: 0.25em; }
`

const recipeTemplateContent = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{title}} | {{site_title}}</title>
  <link rel="stylesheet" href="{{base_href}}css/style.css">
  <meta name="description" content="{{site_description}}">
</head>
<body>
  <header>
    <div class="site-name">{{site_title}}</div>
    <h1>{{title}}</h1>
  </header>
  <div class="recipe-meta">
    {{#if servings}}<span>Serves {{servings}}</span>{{/if}}
    {{#if prep_time}}<span>Prep: {{prep_time}}</span>{{/if}}
    {{#if cook_time}}<span>Cook: {{cook_time}}</span>{{/if}}
    {{#each tags}}<span class="tag">{{this}}</span>{{/each}}
  </div>
  <main>
    {{&content}}
  </main>
  <footer>
    <nav><a href="{{base_href}}index.html">home</a></nav>
    <div class="copyright">&copy; {{site_author}}</div>
  </footer>
</body>
</html>
`

const indexTemplateContent = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{site_title}}</title>
  <link rel="stylesheet" href="{{base_href}}css/style.css">
  <meta name="description" content="{{site_description}}">
</head>
<body>
  <header>
    <h1>{{site_title}}</h1>
    <p>{{site_description}}</p>
  </header>
  <main>
    {{#if recipes}}
    <ul>
      {{#each recipes}}
      <li><a href="{{url}}">{{title}}</a></li>
      {{/each}}
    </ul>
    {{else}}
    <p>No recipes yet.</p>
    {{/if}}
    {{#if categories}}
    <h2>Categories</h2>
    <ul>
      {{#each categories}}
      <li><a href="{{url}}">{{name}}</a> ({{count}})</li>
      {{/each}}
    </ul>
    {{/if}}
  </main>
  <footer>
    <div class="copyright">&copy; {{site_author}}</div>
  </footer>
</body>
</html>
`

const categoryTemplateContent = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{category}} | {{site_title}}</title>
  <link rel="stylesheet" href="{{base_href}}css/style.css">
</head>
<body>
  <header>
    <div class="site-name">{{site_title}}</div>
    <h1>{{category}}</h1>
  </header>
  <main>
    <ul>
      {{#each recipes}}
      <li><a href="{{base_href}}{{url}}">{{title}}</a></li>
      {{/each}}
    </ul>
  </main>
  <footer>
    <nav><a href="{{base_href}}index.html">home</a></nav>
  </footer>
</body>
</html>
`

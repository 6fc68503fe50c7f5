// internal/builder/context.go
package builder

import (
	"sort"
	"strconv"

	"forkful/internal/config"
	"forkful/internal/util"
)

// recipeContext binds one recipe record into the data mapping the
// recipe template renders against. "content" carries the pre-sanitized
// HTML body and is meant for {{&content}}.
func recipeContext(p page, site config.SiteConfig, baseHref string) map[string]any {
	rec := p.record
	servings := ""
	if rec.Servings > 0 {
		servings = strconv.Itoa(rec.Servings)
	}
	return map[string]any{
		"site_title":       site.Title,
		"site_author":      site.Author,
		"site_description": site.Description,
		"base_href":        baseHref,
		"title":            rec.Title,
		"slug":             rec.Slug,
		"tags":             stringList(rec.Tags),
		"categories":       stringList(rec.Categories),
		"servings":         servings,
		"prep_time":        rec.PrepTime,
		"cook_time":        rec.CookTime,
		"ingredients":      stringList(rec.Ingredients),
		"instructions":     stringList(rec.Instructions),
		"equipment":        stringList(rec.Equipment),
		"content":          p.html,
	}
}

// indexContext binds the full recipe list (already sorted by title).
func indexContext(pages []page, site config.SiteConfig) map[string]any {
	return map[string]any{
		"site_title":       site.Title,
		"site_author":      site.Author,
		"site_description": site.Description,
		"base_href":        "",
		"recipes":          recipeSummaries(pages),
		"categories":       categorySummaries(pages),
	}
}

// categorySummaries lists the distinct categories across all pages,
// sorted by display name, with their page URLs and recipe counts.
func categorySummaries(pages []page) []any {
	groups := collectCategories(pages)
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]any, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, map[string]any{
			"name":  name,
			"url":   categoryURL(name),
			"count": len(groups[name]),
		})
	}
	return summaries
}

func categoryContext(name string, members []page, site config.SiteConfig, baseHref string) map[string]any {
	return map[string]any{
		"site_title":       site.Title,
		"site_author":      site.Author,
		"site_description": site.Description,
		"base_href":        baseHref,
		"category":         name,
		"recipes":          recipeSummaries(members),
	}
}

func recipeSummaries(pages []page) []any {
	summaries := make([]any, 0, len(pages))
	for _, p := range pages {
		summaries = append(summaries, map[string]any{
			"title":      p.record.Title,
			"slug":       p.record.Slug,
			"url":        "recipes/" + p.record.Slug + ".html",
			"tags":       stringList(p.record.Tags),
			"categories": stringList(p.record.Categories),
		})
	}
	return summaries
}

func stringList(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// categoryURL is the site-relative path of a category page.
func categoryURL(name string) string {
	return "categories/" + util.Slugify(name) + ".html"
}

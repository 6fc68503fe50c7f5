package util

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w- ]+`)
	multiDashRe  = regexp.MustCompile(`-+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Slugify turns a title or filename stem into a lowercase, hyphenated
// identifier safe for URLs and output paths.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = strings.ReplaceAll(s, "_", "-")
	return multiDashRe.ReplaceAllString(s, "-")
}

// TitleCase uppercases the first letter of every space-separated word.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}

// ComputeBaseHref calculates the relative path to the site root
// so that CSS/JS links work correctly for pages at any depth.
// For example, a page at /categories/breads.html would get a BaseHref of "../".
func ComputeBaseHref(relPath string) string {
	dir := filepath.Dir(relPath)
	if dir == "." {
		return ""
	}
	depth := strings.Count(dir, string(os.PathSeparator)) + 1
	return strings.Repeat("../", depth)
}

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Chocolate Lava Cake", "chocolate-lava-cake"},
		{"apple_pie", "apple-pie"},
		{"Crème brûlée!", "crme-brle"},
		{"already-a-slug", "already-a-slug"},
		{"lots   of   spaces", "lots-of-spaces"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Chocolate Lava Cake", TitleCase("chocolate lava cake"))
	assert.Equal(t, "Already Cased", TitleCase("Already Cased"))
	assert.Equal(t, "Éclair Au Café", TitleCase("éclair au café"))
	assert.Equal(t, "", TitleCase(""))
}

func TestComputeBaseHref(t *testing.T) {
	assert.Equal(t, "", ComputeBaseHref("index.html"))
	assert.Equal(t, "../", ComputeBaseHref("recipes/pancakes.html"))
	assert.Equal(t, "../../", ComputeBaseHref("recipes/sweet/pancakes.html"))
}

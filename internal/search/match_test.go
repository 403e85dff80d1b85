package search

import (
	"strings"
	"testing"

	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMatcher_FieldSelection(t *testing.T) {
	r := models.RecipeRecord{ID: "x", Name: "Soup", Cuisine: "Italian", Ingredients: []string{"Basil"}, DietaryTags: []string{"Vegan"}}

	tests := []struct {
		name    string
		matcher Matcher
		query   string
		want    bool
	}{
		{"tool name", ToolMatcher, "sou", true},
		{"tool cuisine", ToolMatcher, "ital", true},
		{"tool ingredient", ToolMatcher, "BASIL", true},
		{"tool dietary", ToolMatcher, "vegan", true},
		{"tool miss", ToolMatcher, "beef", false},
		{"catalog ignores cuisine", CatalogMatcher, "ital", false},
		{"catalog ignores dietary", CatalogMatcher, "vegan", false},
		{"catalog ingredient", CatalogMatcher, "basil", true},
		{"empty query", CatalogMatcher, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.matcher.Matches(&r, tt.query))
		})
	}
}

func TestMatcher_FilterNoLimit(t *testing.T) {
	got := ToolMatcher.Filter(sampleRecipes(), "", 0)
	assert.Len(t, got, len(sampleRecipes()))
}

func TestMatcher_FilterEmptyCollection(t *testing.T) {
	got := ToolMatcher.Filter(nil, "anything", 5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 100))
	exact := strings.Repeat("b", 100)
	assert.Equal(t, exact, Truncate(exact, 100))
	assert.Equal(t, strings.Repeat("b", 100)+"...", Truncate(strings.Repeat("b", 101), 100))
	// Multi-byte characters count once each.
	assert.Equal(t, strings.Repeat("é", 100)+"...", Truncate(strings.Repeat("é", 120), 100))
}

func TestProject_FewIngredients(t *testing.T) {
	r := models.RecipeRecord{ID: "1", Name: "Toast", Ingredients: []string{"Bread"}}
	got := Project(r)

	assert.Equal(t, []string{"Bread"}, got.KeyIngredients)
	assert.Equal(t, []string{}, got.DietaryRestrictions)
	assert.Nil(t, got.Calories)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "Searched for 'tofu'. Found 2 relevant recipe(s).", Summarize("tofu", 2))
	assert.Contains(t, Summarize("tofu", 0), "Found no direct matches")
	assert.Contains(t, SummarizeFailure("tofu"), "'tofu'")
}

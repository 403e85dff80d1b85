package search

import "github.com/Midoriya12/calsnap/internal/models"

const (
	// DescriptionLimit is the number of characters kept from a description.
	DescriptionLimit = 100
	// Ellipsis marks a truncated description.
	Ellipsis = "..."
	// KeyIngredientCount is how many leading ingredients a RecipeShort keeps.
	KeyIngredientCount = 3
)

// RecipeShort is the compact view of a recipe returned by the search tool.
type RecipeShort struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Cuisine             string   `json:"cuisine"`
	Description         string   `json:"description"`
	Calories            *float64 `json:"calories,omitempty"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	KeyIngredients      []string `json:"keyIngredients"`
}

// Project builds the RecipeShort view of r. Slices are copied so the result
// never aliases the source collection.
func Project(r models.RecipeRecord) RecipeShort {
	n := len(r.Ingredients)
	if n > KeyIngredientCount {
		n = KeyIngredientCount
	}

	var calories *float64
	if r.Calories != nil {
		c := *r.Calories
		calories = &c
	}

	return RecipeShort{
		ID:                  r.ID,
		Name:                r.Name,
		Cuisine:             r.Cuisine,
		Description:         Truncate(r.Description, DescriptionLimit),
		Calories:            calories,
		DietaryRestrictions: append([]string{}, r.DietaryTags...),
		KeyIngredients:      append([]string{}, r.Ingredients[:n]...),
	}
}

// Truncate cuts s to at most limit runes and appends Ellipsis when anything
// was cut.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + Ellipsis
}

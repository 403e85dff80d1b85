package ai

import "github.com/Midoriya12/calsnap/internal/search"

// Forced-output tool names.
const (
	mealEstimateToolName = "record_meal_estimate"
	ingredientsToolName  = "record_ingredients"
)

// searchTermSchema is the JSON schema of the recipe search tool input, shared
// by every provider.
func searchTermSchema() map[string]interface{} {
	return map[string]interface{}{
		"searchTerm": map[string]interface{}{
			"type": "string",
			"description": "The user's query. This could be a recipe name, an ingredient, a cuisine type " +
				"(e.g. Italian, Mexican), a dietary tag (e.g. Vegan, Gluten-Free, Keto), or a general " +
				"description of what the user is looking for.",
		},
	}
}

func mealEstimateSchema() map[string]interface{} {
	return map[string]interface{}{
		"dishName": map[string]interface{}{
			"type":        "string",
			"description": "The most likely name of the dish in the photo",
		},
		"estimatedCalories": map[string]interface{}{
			"type":        "number",
			"description": "Estimated total calories of the portion shown",
		},
		"ingredients": map[string]interface{}{
			"type":        "array",
			"description": "Visible or likely ingredients of the meal",
			"items":       map[string]interface{}{"type": "string"},
		},
		"recipeIdea": map[string]interface{}{
			"type":        "string",
			"description": "A short recipe that would reproduce the dish at home",
		},
	}
}

func ingredientsSchema() map[string]interface{} {
	return map[string]interface{}{
		"ingredients": map[string]interface{}{
			"type":        "array",
			"description": "A list of ingredients detected in the image",
			"items":       map[string]interface{}{"type": "string"},
		},
	}
}

type searchToolInput = search.Input

type mealEstimateToolResult struct {
	DishName          string   `json:"dishName"`
	EstimatedCalories float64  `json:"estimatedCalories"`
	Ingredients       []string `json:"ingredients"`
	RecipeIdea        string   `json:"recipeIdea"`
}

type ingredientsToolResult struct {
	Ingredients []string `json:"ingredients"`
}

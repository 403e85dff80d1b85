package ai

import (
	"context"
	"sync"

	"github.com/Midoriya12/calsnap/internal/config"
	"github.com/Midoriya12/calsnap/internal/search"
)

func testPrompts() *config.Prompts {
	return &config.Prompts{
		Meal: config.MealPrompts{
			Analyze:           config.PromptPair{System: "Estimate the meal. Call {{.ToolName}}.", User: "Analyze this meal photo."},
			DetectIngredients: config.PromptPair{System: "List ingredients. Call {{.ToolName}}.", User: "List the ingredients."},
		},
		Chat: config.ChatPrompts{
			Recipe: config.PromptPair{System: "You are CalSnap AI. Use {{.ToolName}}."},
		},
	}
}

type stubSearcher struct {
	mu     sync.Mutex
	terms  []string
	result search.Result
}

func (s *stubSearcher) Search(ctx context.Context, term string) search.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = append(s.terms, term)
	return s.result
}

func veganResult() search.Result {
	return search.Result{
		FoundRecipes: []search.RecipeShort{{
			ID: "2", Name: "Vegan Lentil Soup", Cuisine: "Global",
			DietaryRestrictions: []string{"Vegan"}, KeyIngredients: []string{"Red Lentils"},
		}},
		SearchSummary: "Searched for 'vegan'. Found 1 relevant recipe(s).",
	}
}

// pngBytes is a PNG signature followed by filler.
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}

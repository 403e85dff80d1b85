package search

import (
	"context"
	"errors"
	"strings"

	"github.com/Midoriya12/calsnap/internal/models"
)

func sampleRecipes() []models.RecipeRecord {
	return []models.RecipeRecord{
		{
			ID: "1", Name: "Spaghetti Carbonara", Cuisine: "Italian",
			Ingredients: []string{"Spaghetti", "Eggs", "Pancetta", "Pecorino Romano", "Black Pepper"},
			DietaryTags: []string{},
			Description: "A classic Roman pasta dish.",
			Calories:    models.Float64Ptr(650),
		},
		{
			ID: "2", Name: "Vegan Lentil Soup", Cuisine: "Global",
			Ingredients: []string{"Red Lentils", "Vegetable Broth", "Carrots", "Celery", "Onion"},
			DietaryTags: []string{"Vegan", "Gluten-Free"},
			Description: "Hearty and healthy lentil soup.",
			Calories:    models.Float64Ptr(350),
		},
		{
			ID: "3", Name: "Chicken Tikka Masala", Cuisine: "Indian",
			Ingredients: []string{"Chicken Breast", "Yogurt", "Tomato Puree", "Garam Masala"},
			DietaryTags: []string{"Gluten-Free"},
			Description: "Creamy curry with marinated chicken.",
		},
		{
			ID: "4", Name: "Avocado Toast", Cuisine: "American",
			Ingredients: []string{"Sourdough", "Avocado"},
			DietaryTags: []string{"Vegetarian"},
			Description: strings.Repeat("a", 150),
			Calories:    models.Float64Ptr(300),
		},
		{
			ID: "5", Name: "Chicken Caesar Salad", Cuisine: "American",
			Ingredients: []string{"Romaine", "Chicken Breast", "Parmesan", "Croutons"},
		},
		{
			ID: "6", Name: "Pad Thai", Cuisine: "Thai",
			Ingredients: []string{"Rice Noodles", "Shrimp", "Peanuts", "Tamarind"},
		},
		{
			ID: "7", Name: "Chicken Fajitas", Cuisine: "Mexican",
			Ingredients: []string{"Chicken Thigh", "Peppers", "Tortillas"},
		},
		{
			ID: "8", Name: "Chicken Noodle Soup", Cuisine: "American",
			Ingredients: []string{"Chicken", "Egg Noodles", "Carrots"},
		},
		{
			ID: "9", Name: "Lemon Chicken", Cuisine: "Greek",
			Ingredients: []string{"Chicken", "Lemon", "Oregano"},
		},
	}
}

type failingSource struct{ err error }

func (f failingSource) ListRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	return nil, f.err
}

func (f failingSource) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	return nil, f.err
}

type panickingSource struct{}

func (panickingSource) ListRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	panic("catalog exploded")
}

func (panickingSource) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	return nil, errors.New("unused")
}

func ids(rs []RecipeShort) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

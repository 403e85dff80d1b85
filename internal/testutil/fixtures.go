package testutil

import (
	"encoding/base64"
	"strings"

	"github.com/Midoriya12/calsnap/internal/models"
)

// TestUserID is the identity subject used across handler and service tests.
const TestUserID = "user-123"

// TestRecipes returns a small catalog with realistic fields.
func TestRecipes() []models.RecipeRecord {
	return []models.RecipeRecord{
		{
			ID: "1", Name: "Spaghetti Carbonara", Cuisine: "Italian",
			Ingredients: []string{"Spaghetti", "Eggs", "Pancetta", "Pecorino Romano", "Black Pepper"},
			Description: "A classic Roman pasta dish made with eggs, hard cheese, cured pork, and black pepper.",
			Calories:    models.Float64Ptr(650),
		},
		{
			ID: "2", Name: "Vegan Lentil Soup", Cuisine: "Global",
			Ingredients: []string{"Red Lentils", "Vegetable Broth", "Carrots", "Celery", "Onion"},
			DietaryTags: []string{"Vegan", "Gluten-Free"},
			Description: "Hearty and healthy lentil soup, packed with vegetables and flavor.",
			Calories:    models.Float64Ptr(350),
		},
		{
			ID: "3", Name: "Chicken Tikka Masala", Cuisine: "Indian",
			Ingredients: []string{"Chicken Breast", "Yogurt", "Tomato Puree", "Garam Masala"},
			DietaryTags: []string{"Gluten-Free"},
			Description: strings.Repeat("Creamy and flavorful. ", 10),
		},
	}
}

// TestEstimation returns a meal estimate as the analyzer would.
func TestEstimation() *models.MealEstimation {
	return &models.MealEstimation{
		DishName:          "Avocado Toast",
		EstimatedCalories: 320,
		Ingredients:       []string{"Sourdough", "Avocado", "Chili Flakes"},
		RecipeIdea:        "Toast the bread, mash the avocado, season and serve.",
	}
}

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// TestPhotoDataURI returns a small PNG data URI.
func TestPhotoDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)
}

package repository

import (
	"context"

	"github.com/Midoriya12/calsnap/internal/models"
)

// RecipeRepo is the interface for recipe catalog operations.
type RecipeRepo interface {
	ListRecipes(ctx context.Context) ([]models.RecipeRecord, error)
	GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error)
	UpsertRecipes(ctx context.Context, recipes []models.RecipeRecord) error
	CountRecipes(ctx context.Context) (int64, error)
}

// SavedMealRepo is the interface for saved meal analysis operations.
type SavedMealRepo interface {
	CreateSavedMeal(ctx context.Context, meal *models.SavedMeal) error
	GetSavedMealsByUser(ctx context.Context, userID string) ([]models.SavedMeal, error)
	DeleteSavedMeal(ctx context.Context, userID, mealID string) error
}

// DailyLogRepo is the interface for daily nutrition log operations.
type DailyLogRepo interface {
	CreateLoggedMeal(ctx context.Context, meal *models.LoggedMeal) error
	GetLoggedMealsByDate(ctx context.Context, userID, date string) ([]models.LoggedMeal, error)
	DeleteLoggedMeal(ctx context.Context, userID, mealID string) error
}

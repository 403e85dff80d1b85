package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/Midoriya12/calsnap/internal/ai"
	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/repository"
	"github.com/Midoriya12/calsnap/internal/search"
)

// --- MockMealAnalyzer ---

// MockMealAnalyzer is a mock implementation of ai.MealAnalyzer.
type MockMealAnalyzer struct {
	AnalyzeMealFunc       func(ctx context.Context, img ai.Image) (*models.MealEstimation, error)
	DetectIngredientsFunc func(ctx context.Context, img ai.Image) ([]string, error)
}

func (m *MockMealAnalyzer) AnalyzeMeal(ctx context.Context, img ai.Image) (*models.MealEstimation, error) {
	if m.AnalyzeMealFunc != nil {
		return m.AnalyzeMealFunc(ctx, img)
	}
	return nil, fmt.Errorf("AnalyzeMeal not configured")
}

func (m *MockMealAnalyzer) DetectIngredients(ctx context.Context, img ai.Image) ([]string, error) {
	if m.DetectIngredientsFunc != nil {
		return m.DetectIngredientsFunc(ctx, img)
	}
	return nil, fmt.Errorf("DetectIngredients not configured")
}

// --- MockChatProvider ---

// MockChatProvider is a mock implementation of ai.ChatProvider. Every request
// is recorded in Requests.
type MockChatProvider struct {
	ChatFunc func(ctx context.Context, req ai.ChatRequest) (string, error)

	mu       sync.Mutex
	Requests []ai.ChatRequest
}

func (m *MockChatProvider) Chat(ctx context.Context, req ai.ChatRequest) (string, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	return "", fmt.Errorf("Chat not configured")
}

// LastRequest returns the most recent request, or the zero value.
func (m *MockChatProvider) LastRequest() ai.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return ai.ChatRequest{}
	}
	return m.Requests[len(m.Requests)-1]
}

// --- MockSavedMealRepo ---

// MockSavedMealRepo is an in-memory implementation of repository.SavedMealRepo.
type MockSavedMealRepo struct {
	mu    sync.Mutex
	Meals []models.SavedMeal
	Err   error
}

func (m *MockSavedMealRepo) CreateSavedMeal(ctx context.Context, meal *models.SavedMeal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Meals = append(m.Meals, *meal)
	return nil
}

func (m *MockSavedMealRepo) GetSavedMealsByUser(ctx context.Context, userID string) ([]models.SavedMeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.SavedMeal
	for i := len(m.Meals) - 1; i >= 0; i-- {
		if m.Meals[i].UserID == userID {
			out = append(out, m.Meals[i])
		}
	}
	return out, nil
}

func (m *MockSavedMealRepo) DeleteSavedMeal(ctx context.Context, userID, mealID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i, meal := range m.Meals {
		if meal.ID == mealID && meal.UserID == userID {
			m.Meals = append(m.Meals[:i], m.Meals[i+1:]...)
			return nil
		}
	}
	return repository.NewNotFoundError("Saved meal not found", nil)
}

// --- MockDailyLogRepo ---

// MockDailyLogRepo is an in-memory implementation of repository.DailyLogRepo.
type MockDailyLogRepo struct {
	mu    sync.Mutex
	Meals []models.LoggedMeal
	Err   error
}

func (m *MockDailyLogRepo) CreateLoggedMeal(ctx context.Context, meal *models.LoggedMeal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Meals = append(m.Meals, *meal)
	return nil
}

func (m *MockDailyLogRepo) GetLoggedMealsByDate(ctx context.Context, userID, date string) ([]models.LoggedMeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.LoggedMeal
	for i := len(m.Meals) - 1; i >= 0; i-- {
		if m.Meals[i].UserID == userID && m.Meals[i].DateLogged == date {
			out = append(out, m.Meals[i])
		}
	}
	return out, nil
}

func (m *MockDailyLogRepo) DeleteLoggedMeal(ctx context.Context, userID, mealID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i, meal := range m.Meals {
		if meal.ID == mealID && meal.UserID == userID {
			m.Meals = append(m.Meals[:i], m.Meals[i+1:]...)
			return nil
		}
	}
	return repository.NewNotFoundError("Logged meal not found", nil)
}

// --- MockRecipeRepo ---

// MockRecipeRepo is a mock implementation of repository.RecipeRepo backed by
// a StaticSource.
type MockRecipeRepo struct {
	Recipes []models.RecipeRecord
	Err     error

	Upserted [][]models.RecipeRecord
}

func (m *MockRecipeRepo) ListRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return search.NewStaticSource(m.Recipes).ListRecipes(ctx)
}

func (m *MockRecipeRepo) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	r, err := search.NewStaticSource(m.Recipes).GetRecipe(ctx, id)
	if err != nil {
		return nil, repository.NewNotFoundError("Recipe not found", search.ErrRecipeNotFound)
	}
	return r, nil
}

func (m *MockRecipeRepo) UpsertRecipes(ctx context.Context, recipes []models.RecipeRecord) error {
	if m.Err != nil {
		return m.Err
	}
	m.Upserted = append(m.Upserted, recipes)
	return nil
}

func (m *MockRecipeRepo) CountRecipes(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.Recipes)), nil
}

// --- MockNutritionLookup ---

// MockNutritionLookup is a mock ingredient nutrition lookup.
type MockNutritionLookup struct {
	LookupIngredientFunc func(ctx context.Context, ingredient string) (*models.IngredientNutrition, error)
}

func (m *MockNutritionLookup) LookupIngredient(ctx context.Context, ingredient string) (*models.IngredientNutrition, error) {
	if m.LookupIngredientFunc != nil {
		return m.LookupIngredientFunc(ctx, ingredient)
	}
	return nil, fmt.Errorf("LookupIngredient not configured")
}

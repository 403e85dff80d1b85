package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Midoriya12/calsnap/internal/ai"
	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/repository"
	"github.com/google/uuid"
)

// MealService is the business logic layer for meal photos and saved analyses.
type MealService struct {
	Analyzer ai.MealAnalyzer
	Repo     repository.SavedMealRepo
	Now      func() time.Time
}

// NewMealService is the constructor function for initializing a new MealService
func NewMealService(analyzer ai.MealAnalyzer, repo repository.SavedMealRepo) *MealService {
	return &MealService{
		Analyzer: analyzer,
		Repo:     repo,
		Now:      time.Now,
	}
}

func parsePhoto(photoDataURI string) (ai.Image, error) {
	if strings.TrimSpace(photoDataURI) == "" {
		return ai.Image{}, validationErrorf("photoDataUri is required")
	}
	img, err := ai.ParseImageDataURI(photoDataURI)
	if err != nil {
		return ai.Image{}, ValidationError{Message: err.Error()}
	}
	return img, nil
}

// AnalyzeMeal estimates the dish, calories, ingredients and a recipe idea.
func (s *MealService) AnalyzeMeal(ctx context.Context, photoDataURI string) (*models.MealEstimation, error) {
	img, err := parsePhoto(photoDataURI)
	if err != nil {
		return nil, err
	}

	est, err := s.Analyzer.AnalyzeMeal(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze meal: %w", err)
	}
	if est.Ingredients == nil {
		est.Ingredients = []string{}
	}
	return est, nil
}

// DetectIngredients lists the ingredients visible in the photo.
func (s *MealService) DetectIngredients(ctx context.Context, photoDataURI string) ([]string, error) {
	img, err := parsePhoto(photoDataURI)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.Analyzer.DetectIngredients(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("failed to detect ingredients: %w", err)
	}
	if ingredients == nil {
		ingredients = []string{}
	}
	return ingredients, nil
}

// SaveMeal stores an analysis for the user.
func (s *MealService) SaveMeal(ctx context.Context, userID string, est models.MealEstimation) (*models.SavedMeal, error) {
	est.DishName = strings.TrimSpace(est.DishName)
	if est.DishName == "" {
		return nil, validationErrorf("dishName is required")
	}
	if est.EstimatedCalories < 0 {
		return nil, validationErrorf("estimatedCalories must not be negative")
	}
	if est.Ingredients == nil {
		est.Ingredients = []string{}
	}

	meal := &models.SavedMeal{
		ID:             uuid.NewString(),
		UserID:         userID,
		MealEstimation: est,
		SavedAt:        s.Now().UTC(),
	}
	if err := s.Repo.CreateSavedMeal(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// ListSavedMeals returns the user's saved analyses, newest first.
func (s *MealService) ListSavedMeals(ctx context.Context, userID string) ([]models.SavedMeal, error) {
	meals, err := s.Repo.GetSavedMealsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []models.SavedMeal{}
	}
	return meals, nil
}

// DeleteSavedMeal removes one saved analysis.
func (s *MealService) DeleteSavedMeal(ctx context.Context, userID, mealID string) error {
	if mealID == "" {
		return validationErrorf("meal id is required")
	}
	err := s.Repo.DeleteSavedMeal(ctx, userID, mealID)
	var nf repository.NotFoundError
	if err != nil && !errors.As(err, &nf) {
		return fmt.Errorf("failed to delete saved meal: %w", err)
	}
	return err
}

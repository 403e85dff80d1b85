package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/nutrition"
	"github.com/Midoriya12/calsnap/internal/repository"
)

// NutritionLookup finds per-ingredient nutrition facts.
type NutritionLookup interface {
	LookupIngredient(ctx context.Context, ingredient string) (*models.IngredientNutrition, error)
}

// NutritionService is the business logic layer for ingredient nutrition.
type NutritionService struct {
	Lookup NutritionLookup // nil when no provider is configured
}

// NewNutritionService is the constructor function for initializing a new NutritionService
func NewNutritionService(lookup NutritionLookup) *NutritionService {
	return &NutritionService{Lookup: lookup}
}

// GetIngredientNutrition looks up one ingredient.
func (s *NutritionService) GetIngredientNutrition(ctx context.Context, ingredient string) (*models.IngredientNutrition, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return nil, validationErrorf("Ingredient name is required")
	}
	if s.Lookup == nil {
		return nil, ErrNutritionUnavailable
	}

	info, err := s.Lookup.LookupIngredient(ctx, ingredient)
	if err != nil {
		if errors.Is(err, nutrition.ErrUnknownIngredient) {
			return nil, repository.NewNotFoundError(fmt.Sprintf("No nutrition data found for %q", ingredient), err)
		}
		return nil, fmt.Errorf("failed to look up nutrition: %w", err)
	}
	return info, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/search"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository is a repository for the recipe catalog. It also serves
// as a search.RecipeSource.
type RecipeRepository struct {
	DB *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{DB: db}
}

// ListRecipes returns the whole catalog in insertion order.
func (r *RecipeRepository) ListRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	var recipes []models.RecipeRecord
	if err := r.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by its ID.
func (r *RecipeRepository) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	var recipe models.RecipeRecord
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{message: "Recipe not found", err: search.ErrRecipeNotFound}
		}
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	return &recipe, nil
}

// UpsertRecipes inserts the recipes, replacing the content of rows that
// already exist while keeping their original creation time.
func (r *RecipeRepository) UpsertRecipes(ctx context.Context, recipes []models.RecipeRecord) error {
	if len(recipes) == 0 {
		return nil
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "cuisine", "ingredients", "dietary_tags", "description",
			"calories", "image_url", "preparation_time", "servings", "updated_at",
		}),
	}).CreateInBatches(recipes, 100).Error
	if err != nil {
		return fmt.Errorf("failed to upsert recipes: %w", err)
	}
	return nil
}

// CountRecipes returns the catalog size.
func (r *RecipeRepository) CountRecipes(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.RecipeRecord{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

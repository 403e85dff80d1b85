package repository

import (
	"context"
	"fmt"

	"github.com/Midoriya12/calsnap/internal/models"
	"gorm.io/gorm"
)

// SavedMealRepository stores meal analyses a user chose to keep.
type SavedMealRepository struct {
	DB *gorm.DB
}

// NewSavedMealRepository creates a new SavedMealRepository.
func NewSavedMealRepository(db *gorm.DB) *SavedMealRepository {
	return &SavedMealRepository{DB: db}
}

// CreateSavedMeal inserts a saved meal.
func (r *SavedMealRepository) CreateSavedMeal(ctx context.Context, meal *models.SavedMeal) error {
	if err := r.DB.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("failed to save meal: %w", err)
	}
	return nil
}

// GetSavedMealsByUser returns a user's saved meals, newest first.
func (r *SavedMealRepository) GetSavedMealsByUser(ctx context.Context, userID string) ([]models.SavedMeal, error) {
	var meals []models.SavedMeal
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved meals: %w", err)
	}
	return meals, nil
}

// DeleteSavedMeal removes one of the user's saved meals.
func (r *SavedMealRepository) DeleteSavedMeal(ctx context.Context, userID, mealID string) error {
	return deleteOwned(r.DB.WithContext(ctx), &models.SavedMeal{}, userID, mealID, "Saved meal not found")
}

func deleteOwned(db *gorm.DB, model interface{}, userID, id, notFound string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NotFoundError{message: notFound}
	}
	return nil
}

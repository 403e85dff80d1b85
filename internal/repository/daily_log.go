package repository

import (
	"context"
	"fmt"

	"github.com/Midoriya12/calsnap/internal/models"
	"gorm.io/gorm"
)

// DailyLogRepository stores the user's daily nutrition log.
type DailyLogRepository struct {
	DB *gorm.DB
}

// NewDailyLogRepository creates a new DailyLogRepository.
func NewDailyLogRepository(db *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{DB: db}
}

// CreateLoggedMeal inserts a log entry.
func (r *DailyLogRepository) CreateLoggedMeal(ctx context.Context, meal *models.LoggedMeal) error {
	if err := r.DB.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("failed to log meal: %w", err)
	}
	return nil
}

// GetLoggedMealsByDate returns a user's entries for one day, newest first.
func (r *DailyLogRepository) GetLoggedMealsByDate(ctx context.Context, userID, date string) ([]models.LoggedMeal, error) {
	var meals []models.LoggedMeal
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND date_logged = ?", userID, date).
		Order("created_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list logged meals: %w", err)
	}
	return meals, nil
}

// DeleteLoggedMeal removes one of the user's log entries.
func (r *DailyLogRepository) DeleteLoggedMeal(ctx context.Context, userID, mealID string) error {
	return deleteOwned(r.DB.WithContext(ctx), &models.LoggedMeal{}, userID, mealID, "Logged meal not found")
}

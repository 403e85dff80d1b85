package models

import (
	"time"

	"github.com/lib/pq"
)

// MealEstimation is the AI estimate for a meal photo.
type MealEstimation struct {
	DishName          string         `json:"dishName"`
	EstimatedCalories float64        `json:"estimatedCalories"`
	Ingredients       pq.StringArray `json:"ingredients" gorm:"type:text[]"`
	RecipeIdea        string         `json:"recipeIdea" gorm:"type:text"`
}

// SavedMeal is a meal analysis the user chose to keep.
type SavedMeal struct {
	ID     string `json:"id" gorm:"primaryKey;type:text"`
	UserID string `json:"-" gorm:"index;not null"`
	MealEstimation
	SavedAt time.Time `json:"savedAt"`
}

// MealSource records how a logged meal's numbers were obtained.
type MealSource string

// MealSource enum values.
const (
	MealSourceAI     MealSource = "AI Estimation"
	MealSourceManual MealSource = "Manual Entry"
)

// LoggedMeal is one entry in a user's daily nutrition log.
type LoggedMeal struct {
	ID         string     `json:"id" gorm:"primaryKey;type:text"`
	UserID     string     `json:"userId" gorm:"index:idx_logged_meals_user_date;not null"`
	MealName   string     `json:"mealName" gorm:"not null"`
	Calories   float64    `json:"calories"`
	Protein    *float64   `json:"protein,omitempty"`
	Fat        *float64   `json:"fat,omitempty"`
	Carbs      *float64   `json:"carbs,omitempty"`
	Fiber      *float64   `json:"fiber,omitempty"`
	DateLogged string     `json:"dateLogged" gorm:"index:idx_logged_meals_user_date;type:char(10)"` // YYYY-MM-DD
	Source     MealSource `json:"source" gorm:"type:text"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// DailyTotals sums the nutrients of a day's logged meals.
type DailyTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
}

// SumDailyTotals adds up the meals; missing macros count as zero.
func SumDailyTotals(meals []LoggedMeal) DailyTotals {
	var t DailyTotals
	for _, m := range meals {
		t.Calories += m.Calories
		t.Protein += deref(m.Protein)
		t.Fat += deref(m.Fat)
		t.Carbs += deref(m.Carbs)
		t.Fiber += deref(m.Fiber)
	}
	return t
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// IngredientNutrition is the per-ingredient nutrition lookup result.
type IngredientNutrition struct {
	Ingredient string  `json:"ingredient"`
	Calories   float64 `json:"calories"`
	Protein    string  `json:"protein"`
	Fat        string  `json:"fat"`
	Carbs      string  `json:"carbs"`
	Source     string  `json:"source"`
}

package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Validation errors for RecipeRecord.
var (
	ErrRecipeMissingID       = errors.New("recipe id is required")
	ErrRecipeMissingName     = errors.New("recipe name is required")
	ErrRecipeNegativeCalorie = errors.New("recipe calories must not be negative")
	ErrRecipeInvalidCalorie  = errors.New("recipe calories must be a finite number")
)

// RecipeRecord is the canonical catalog recipe. It is the unit of search and
// the shape every upstream provider payload is translated into.
type RecipeRecord struct {
	ID              string         `json:"id" gorm:"primaryKey;type:text"`
	Name            string         `json:"name" gorm:"not null"`
	Cuisine         string         `json:"cuisine" gorm:"index"`
	Ingredients     pq.StringArray `json:"ingredients" gorm:"type:text[]"`
	DietaryTags     pq.StringArray `json:"dietaryRestrictions" gorm:"type:text[];column:dietary_tags"`
	Description     string         `json:"description" gorm:"type:text"`
	Calories        *float64       `json:"calories,omitempty"`
	ImageURL        string         `json:"imageUrl,omitempty"`
	PreparationTime string         `json:"preparationTime,omitempty"`
	Servings        int            `json:"servings,omitempty"`
	CreatedAt       time.Time      `json:"-"`
	UpdatedAt       time.Time      `json:"-"`
}

// TableName pins the catalog table name.
func (RecipeRecord) TableName() string {
	return "recipes"
}

// Validate checks the record invariants. Only the id and name are required;
// every other field may be empty.
func (r *RecipeRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrRecipeMissingID
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("recipe %s: %w", r.ID, ErrRecipeMissingName)
	}
	if r.Calories != nil && (math.IsNaN(*r.Calories) || math.IsInf(*r.Calories, 0)) {
		return fmt.Errorf("recipe %s: %w", r.ID, ErrRecipeInvalidCalorie)
	}
	if r.Calories != nil && *r.Calories < 0 {
		return fmt.Errorf("recipe %s: %w", r.ID, ErrRecipeNegativeCalorie)
	}
	return nil
}

// Normalize trims whitespace and drops blank ingredient and tag entries.
// Ingredient order is preserved.
func (r *RecipeRecord) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Name = strings.TrimSpace(r.Name)
	r.Cuisine = strings.TrimSpace(r.Cuisine)
	r.Description = strings.TrimSpace(r.Description)
	r.Ingredients = compactStrings(r.Ingredients)
	r.DietaryTags = compactStrings(r.DietaryTags)
}

func compactStrings(in []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}

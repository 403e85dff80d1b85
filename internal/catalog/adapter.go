package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/models"
	"go.uber.org/zap"
)

// DecodeRecipes translates a recipe JSON payload into records. The payload
// may be a bare array or an object with a "recipes" array, and each entry may
// use any of the field spellings upstream providers are known to send.
func DecodeRecipes(payload []byte) ([]models.RecipeRecord, error) {
	var items []map[string]interface{}
	if err := json.Unmarshal(payload, &items); err != nil {
		var wrapped struct {
			Recipes []map[string]interface{} `json:"recipes"`
		}
		if err2 := json.Unmarshal(payload, &wrapped); err2 != nil {
			return nil, fmt.Errorf("failed to decode recipe payload: %w", err)
		}
		items = wrapped.Recipes
	}

	records := make([]models.RecipeRecord, 0, len(items))
	for _, item := range items {
		records = append(records, adaptRecipe(item))
	}
	return records, nil
}

func adaptRecipe(m map[string]interface{}) models.RecipeRecord {
	r := models.RecipeRecord{
		ID:              stringField(m, "id", "recipeId", "_id"),
		Name:            stringField(m, "name", "title"),
		Cuisine:         stringField(m, "cuisine", "area"),
		Ingredients:     stringListField(m, "ingredients"),
		DietaryTags:     stringListField(m, "dietaryRestrictions", "dietaryTags", "diets"),
		Description:     stringField(m, "description", "summary"),
		Calories:        numberField(m, "calories", "kcal"),
		ImageURL:        stringField(m, "imageUrl", "image"),
		PreparationTime: stringField(m, "preparationTime", "prepTime"),
	}
	if servings := numberField(m, "servings", "yield"); servings != nil && *servings > 0 {
		r.Servings = int(*servings)
	}
	return r
}

// Finalize normalizes and validates records, dropping invalid entries and
// later duplicates of an id. Collection order is preserved.
func Finalize(source string, records []models.RecipeRecord) []models.RecipeRecord {
	seen := make(map[string]bool, len(records))
	out := make([]models.RecipeRecord, 0, len(records))
	for _, r := range records {
		r.Normalize()
		if err := r.Validate(); err != nil {
			logger.Get().Warn("dropping invalid recipe",
				zap.String("source", source),
				zap.Error(err))
			continue
		}
		if seen[r.ID] {
			logger.Get().Warn("dropping duplicate recipe",
				zap.String("source", source),
				zap.String("recipe_id", r.ID))
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}

func stringField(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}

func stringListField(m map[string]interface{}, keys ...string) []string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case []interface{}:
			out := make([]string, 0, len(v))
			for _, item := range v {
				switch it := item.(type) {
				case string:
					out = append(out, it)
				case map[string]interface{}:
					if s := stringField(it, "name", "text", "food", "label"); s != "" {
						out = append(out, s)
					}
				}
			}
			return out
		case string:
			return strings.Split(v, ",")
		}
	}
	return nil
}

func numberField(m map[string]interface{}, keys ...string) *float64 {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return &v
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
				return &f
			}
		}
	}
	return nil
}

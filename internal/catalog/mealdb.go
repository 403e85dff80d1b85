package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/search"
)

// DefaultMealDBBaseURL is the public TheMealDB API root.
const DefaultMealDBBaseURL = "https://www.themealdb.com/api/json/v1/1"

const mealDBMaxIngredients = 20

// MealDBSource builds the catalog from TheMealDB by listing meals by first
// letter.
type MealDBSource struct {
	BaseURL  string
	Letters  string
	MaxBytes int64
	client   *http.Client
}

// NewMealDBSource creates a MealDBSource covering every first letter.
func NewMealDBSource(baseURL string) *MealDBSource {
	if baseURL == "" {
		baseURL = DefaultMealDBBaseURL
	}
	return &MealDBSource{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Letters:  "abcdefghijklmnopqrstuvwxyz",
		MaxBytes: DefaultMaxPayloadBytes,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// mealDBResponse carries meals as loose maps because ingredients arrive as
// twenty numbered fields.
type mealDBResponse struct {
	Meals []map[string]interface{} `json:"meals"`
}

// ListRecipes fetches every letter page in order, one request per letter.
// Callers that search often should put a CachedSource in front.
func (s *MealDBSource) ListRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	var records []models.RecipeRecord
	for _, letter := range s.Letters {
		meals, err := s.fetch(ctx, "search.php", url.Values{"f": {string(letter)}})
		if err != nil {
			return nil, err
		}
		for _, m := range meals {
			records = append(records, AdaptMeal(m))
		}
	}
	return Finalize("mealdb", records), nil
}

// GetRecipe looks a meal up by its TheMealDB id.
func (s *MealDBSource) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	meals, err := s.fetch(ctx, "lookup.php", url.Values{"i": {id}})
	if err != nil {
		return nil, err
	}
	adapted := make([]models.RecipeRecord, 0, len(meals))
	for _, m := range meals {
		adapted = append(adapted, AdaptMeal(m))
	}
	records := Finalize("mealdb", adapted)
	if len(records) == 0 {
		return nil, fmt.Errorf("recipe %q: %w", id, search.ErrRecipeNotFound)
	}
	return &records[0], nil
}

func (s *MealDBSource) fetch(ctx context.Context, endpoint string, params url.Values) ([]map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create TheMealDB request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call TheMealDB: %w", err)
	}
	defer resp.Body.Close()

	body, err := ReadPayload(resp.Body, s.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read TheMealDB response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TheMealDB returned status %d", resp.StatusCode)
	}

	var mr mealDBResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return nil, fmt.Errorf("failed to parse TheMealDB JSON: %w", err)
	}
	// "meals" is null when nothing matches.
	return mr.Meals, nil
}

// AdaptMeal translates one TheMealDB meal into a record. Vegan and
// Vegetarian categories become dietary tags, as do the meal's own tags.
func AdaptMeal(m map[string]interface{}) models.RecipeRecord {
	r := models.RecipeRecord{
		ID:          stringField(m, "idMeal"),
		Name:        stringField(m, "strMeal"),
		Description: stringField(m, "strInstructions"),
		ImageURL:    stringField(m, "strMealThumb"),
	}

	if area := stringField(m, "strArea"); !strings.EqualFold(area, "Unknown") {
		r.Cuisine = area
	}

	for i := 1; i <= mealDBMaxIngredients; i++ {
		if ing := strings.TrimSpace(stringField(m, "strIngredient"+strconv.Itoa(i))); ing != "" {
			r.Ingredients = append(r.Ingredients, ing)
		}
	}

	switch category := stringField(m, "strCategory"); category {
	case "Vegan", "Vegetarian":
		r.DietaryTags = append(r.DietaryTags, category)
	}
	for _, tag := range strings.Split(stringField(m, "strTags"), ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" && !containsFold(r.DietaryTags, tag) {
			r.DietaryTags = append(r.DietaryTags, tag)
		}
	}
	return r
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

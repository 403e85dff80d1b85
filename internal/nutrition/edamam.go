package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Midoriya12/calsnap/internal/models"
)

// DefaultBaseURL is the Edamam API root.
const DefaultBaseURL = "https://api.edamam.com"

// maxResponseBytes bounds a nutrition-data response.
const maxResponseBytes = 1 << 20

// SourceLabel is reported as the source of every lookup.
const SourceLabel = "Edamam Nutrition Analysis (per 100g)"

// ErrUnknownIngredient is returned when Edamam cannot parse the ingredient.
var ErrUnknownIngredient = errors.New("ingredient not recognized")

// EdamamClient looks up ingredient nutrition with the Edamam Nutrition
// Analysis API.
type EdamamClient struct {
	BaseURL string
	appID   string
	appKey  string
	client  *http.Client
}

// NewEdamamClient creates a client with a 10 second timeout.
func NewEdamamClient(appID, appKey string) *EdamamClient {
	return &EdamamClient{
		BaseURL: DefaultBaseURL,
		appID:   appID,
		appKey:  appKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type nutritionDataResponse struct {
	Calories       float64 `json:"calories"`
	TotalNutrients map[string]struct {
		Label    string  `json:"label"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	} `json:"totalNutrients"`
}

// LookupIngredient returns calories and macros for 100g of the ingredient.
func (c *EdamamClient) LookupIngredient(ctx context.Context, ingredient string) (*models.IngredientNutrition, error) {
	ingredient = strings.TrimSpace(ingredient)

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("nutrition-type", "cooking")
	params.Set("ingr", "100g "+ingredient)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/nutrition-data?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create nutrition request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Edamam nutrition API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read nutrition response: %w", err)
	}

	// Edamam answers 555 when it cannot parse the ingredient text.
	if resp.StatusCode == 555 {
		return nil, fmt.Errorf("%q: %w", ingredient, ErrUnknownIngredient)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edamam nutrition API error %d: %s", resp.StatusCode, string(body))
	}

	var nr nutritionDataResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, fmt.Errorf("failed to parse nutrition JSON: %w", err)
	}
	if nr.Calories == 0 && len(nr.TotalNutrients) == 0 {
		return nil, fmt.Errorf("%q: %w", ingredient, ErrUnknownIngredient)
	}

	return &models.IngredientNutrition{
		Ingredient: ingredient,
		Calories:   math.Round(nr.Calories),
		Protein:    grams(nr.TotalNutrients["PROCNT"].Quantity),
		Fat:        grams(nr.TotalNutrients["FAT"].Quantity),
		Carbs:      grams(nr.TotalNutrients["CHOCDF"].Quantity),
		Source:     SourceLabel,
	}, nil
}

// grams renders a quantity rounded to one decimal, e.g. "6.3g".
func grams(q float64) string {
	return strconv.FormatFloat(math.Round(q*10)/10, 'f', -1, 64) + "g"
}

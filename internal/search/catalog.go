package search

import (
	"strings"

	"github.com/Midoriya12/calsnap/internal/models"
)

// AnyValue disables a cuisine or dietary filter.
const AnyValue = "all"

// CatalogFilter is the catalog listing query: free text over name and
// ingredients plus exact cuisine and dietary constraints.
type CatalogFilter struct {
	Query   string
	Cuisine string
	Dietary string
}

// Facets lists the distinct cuisines and dietary tags of a collection in
// first-seen order.
type Facets struct {
	Cuisines    []string `json:"cuisines"`
	DietaryTags []string `json:"dietaryTags"`
}

// FilterCatalog applies f without a result cap or truncation.
func FilterCatalog(records []models.RecipeRecord, f CatalogFilter) []models.RecipeRecord {
	f.Cuisine = strings.TrimSpace(f.Cuisine)
	f.Dietary = strings.TrimSpace(f.Dietary)

	matched := CatalogMatcher.Filter(records, f.Query, 0)
	out := matched[:0]
	for _, r := range matched {
		if !isAny(f.Cuisine) && !strings.EqualFold(r.Cuisine, f.Cuisine) {
			continue
		}
		if !isAny(f.Dietary) && !hasTag(r.DietaryTags, f.Dietary) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CollectFacets gathers the filter options offered for records.
func CollectFacets(records []models.RecipeRecord) Facets {
	f := Facets{Cuisines: []string{}, DietaryTags: []string{}}
	seenCuisine := map[string]bool{}
	seenTag := map[string]bool{}
	for _, r := range records {
		if c := r.Cuisine; c != "" && !seenCuisine[strings.ToLower(c)] {
			seenCuisine[strings.ToLower(c)] = true
			f.Cuisines = append(f.Cuisines, c)
		}
		for _, t := range r.DietaryTags {
			if !seenTag[strings.ToLower(t)] {
				seenTag[strings.ToLower(t)] = true
				f.DietaryTags = append(f.DietaryTags, t)
			}
		}
	}
	return f
}

func isAny(v string) bool {
	return v == "" || strings.EqualFold(v, AnyValue)
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

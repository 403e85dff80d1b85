package search

import (
	"strings"

	"github.com/Midoriya12/calsnap/internal/models"
)

// Field selects the searchable text values of a recipe.
type Field func(r *models.RecipeRecord) []string

// Searchable fields.
var (
	FieldName        Field = func(r *models.RecipeRecord) []string { return []string{r.Name} }
	FieldCuisine     Field = func(r *models.RecipeRecord) []string { return []string{r.Cuisine} }
	FieldIngredients Field = func(r *models.RecipeRecord) []string { return r.Ingredients }
	FieldDietaryTags Field = func(r *models.RecipeRecord) []string { return r.DietaryTags }
)

// Matcher is the shared matching primitive: a record matches when any value
// of any selected field contains the query, ignoring case.
type Matcher struct {
	Fields []Field
}

// ToolMatcher is used by the assistant search tool.
var ToolMatcher = Matcher{Fields: []Field{FieldName, FieldCuisine, FieldIngredients, FieldDietaryTags}}

// CatalogMatcher is used by the catalog listing, which filters cuisine and
// dietary tags separately.
var CatalogMatcher = Matcher{Fields: []Field{FieldName, FieldIngredients}}

// Matches reports whether r matches query. An empty query matches every record.
func (m Matcher) Matches(r *models.RecipeRecord, query string) bool {
	return m.matchesLower(r, strings.ToLower(query))
}

func (m Matcher) matchesLower(r *models.RecipeRecord, q string) bool {
	for _, field := range m.Fields {
		for _, v := range field(r) {
			if strings.Contains(strings.ToLower(v), q) {
				return true
			}
		}
	}
	return false
}

// Filter returns the matching records in collection order, stopping after
// limit matches. A limit of zero or less means no limit. The input slice is
// never modified.
func (m Matcher) Filter(records []models.RecipeRecord, query string, limit int) []models.RecipeRecord {
	q := strings.ToLower(query)
	out := make([]models.RecipeRecord, 0)
	for i := range records {
		if limit > 0 && len(out) >= limit {
			break
		}
		if m.matchesLower(&records[i], q) {
			out = append(out, records[i])
		}
	}
	return out
}

package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/Midoriya12/calsnap/internal/models"
)

// ErrRecipeNotFound is returned by a RecipeSource when no record has the
// requested id.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeSource provides the recipe collection. Implementations must not
// hand out slices that they later mutate.
type RecipeSource interface {
	ListRecipes(ctx context.Context) ([]models.RecipeRecord, error)
	GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error)
}

// StaticSource serves a fixed in-process collection.
type StaticSource struct {
	records []models.RecipeRecord
	byID    map[string]int
}

// NewStaticSource copies records into a StaticSource. Records that fail
// validation are skipped and duplicate ids keep the first occurrence.
func NewStaticSource(records []models.RecipeRecord) *StaticSource {
	s := &StaticSource{byID: make(map[string]int, len(records))}
	for _, r := range records {
		r.Normalize()
		if err := r.Validate(); err != nil {
			continue
		}
		if _, dup := s.byID[r.ID]; dup {
			continue
		}
		s.byID[r.ID] = len(s.records)
		s.records = append(s.records, r)
	}
	return s
}

// ListRecipes returns a copy of the collection.
func (s *StaticSource) ListRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	out := make([]models.RecipeRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// GetRecipe returns the record with the given id.
func (s *StaticSource) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("recipe %q: %w", id, ErrRecipeNotFound)
	}
	r := s.records[i]
	return &r, nil
}

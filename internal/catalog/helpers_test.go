package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/search"
)

// countingSource records how often it is consulted.
type countingSource struct {
	mu      sync.Mutex
	records []models.RecipeRecord
	err     error
	lists   int
	lookups int
}

func (s *countingSource) ListRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.RecipeRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *countingSource) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.records {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, search.ErrRecipeNotFound
}

var errUpstream = errors.New("upstream down")

func twoRecipes() []models.RecipeRecord {
	return []models.RecipeRecord{
		{ID: "1", Name: "Vegan Lentil Soup", Cuisine: "Global", Ingredients: []string{"Red Lentils"}, DietaryTags: []string{"Vegan"}},
		{ID: "2", Name: "Pad Thai", Cuisine: "Thai", Ingredients: []string{"Rice Noodles"}, Calories: models.Float64Ptr(500)},
	}
}

// memoryCache is an in-process Cache.
type memoryCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = data
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

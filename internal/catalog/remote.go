package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/search"
)

// RemoteSource fetches the catalog from an HTTP JSON endpoint on every call.
type RemoteSource struct {
	URL      string
	MaxBytes int64
	client   *http.Client
}

// NewRemoteSource creates a RemoteSource with a 10 second timeout.
func NewRemoteSource(url string) *RemoteSource {
	return &RemoteSource{
		URL:      url,
		MaxBytes: DefaultMaxPayloadBytes,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// ListRecipes fetches and adapts the whole catalog.
func (s *RemoteSource) ListRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	defer resp.Body.Close()

	body, err := ReadPayload(resp.Body, s.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recipe endpoint returned status %d", resp.StatusCode)
	}

	records, err := DecodeRecipes(body)
	if err != nil {
		return nil, err
	}
	return Finalize("remote", records), nil
}

// GetRecipe fetches the catalog and picks the record with the given id; the
// endpoint has no lookup by id.
func (s *RemoteSource) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	records, err := s.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	return findRecipe(records, id)
}

func findRecipe(records []models.RecipeRecord, id string) (*models.RecipeRecord, error) {
	for i := range records {
		if records[i].ID == id {
			r := records[i]
			return &r, nil
		}
	}
	return nil, fmt.Errorf("recipe %q: %w", id, search.ErrRecipeNotFound)
}

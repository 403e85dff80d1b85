package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/repository"
	"github.com/Midoriya12/calsnap/internal/search"
	"go.uber.org/zap"
)

// SeedResult reports what a catalog seed run did.
type SeedResult struct {
	Fetched int
	Total   int64
	Records []models.RecipeRecord
}

// SeedCatalog copies every recipe from the upstream source into the catalog
// table. Existing rows with the same id are overwritten.
func SeedCatalog(ctx context.Context, from search.RecipeSource, repo repository.RecipeRepo) (*SeedResult, error) {
	records, err := from.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upstream catalog: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("upstream catalog is empty")
	}

	if err := repo.UpsertRecipes(ctx, records); err != nil {
		return nil, err
	}

	total, err := repo.CountRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	logger.Get().Info("catalog seeded",
		zap.Int("fetched", len(records)),
		zap.Int64("total", total))
	return &SeedResult{Fetched: len(records), Total: total, Records: records}, nil
}

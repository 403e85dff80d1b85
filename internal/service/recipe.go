package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/repository"
	"github.com/Midoriya12/calsnap/internal/search"
)

// RecipeService is the business logic layer for the recipe catalog.
type RecipeService struct {
	Source search.RecipeSource
	Tool   *search.Tool
}

// CatalogResponse is the filtered catalog plus the facets of the full one.
type CatalogResponse struct {
	Recipes []models.RecipeRecord `json:"recipes"`
	Total   int                   `json:"total"`
	Facets  search.Facets         `json:"facets"`
}

// NewRecipeService is the constructor function for initializing a new RecipeService
func NewRecipeService(source search.RecipeSource) *RecipeService {
	return &RecipeService{
		Source: source,
		Tool:   search.NewTool(source),
	}
}

// ListRecipes filters the catalog. Facets always describe the whole catalog
// so the filter controls keep every option.
func (s *RecipeService) ListRecipes(ctx context.Context, filter search.CatalogFilter) (*CatalogResponse, error) {
	all, err := s.Source.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := search.FilterCatalog(all, filter)
	return &CatalogResponse{
		Recipes: recipes,
		Total:   len(recipes),
		Facets:  search.CollectFacets(all),
	}, nil
}

// GetRecipe returns one recipe by id.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	if id == "" {
		return nil, validationErrorf("recipe id is required")
	}
	r, err := s.Source.GetRecipe(ctx, id)
	if err != nil {
		var nf repository.NotFoundError
		if errors.As(err, &nf) {
			return nil, err
		}
		if errors.Is(err, search.ErrRecipeNotFound) {
			return nil, repository.NewNotFoundError("Recipe not found", err)
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return r, nil
}

// SearchRecipes runs the assistant's recipe search tool. It never fails.
func (s *RecipeService) SearchRecipes(ctx context.Context, term string) search.Result {
	return s.Tool.Search(ctx, term)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Midoriya12/calsnap/internal/repository"
	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/Midoriya12/calsnap/internal/testutil"
)

func newTestRecipeService() *RecipeService {
	return NewRecipeService(search.NewStaticSource(testutil.TestRecipes()))
}

func TestListRecipes_FilterAndFacets(t *testing.T) {
	svc := newTestRecipeService()

	resp, err := svc.ListRecipes(context.Background(), search.CatalogFilter{Dietary: "gluten-free"})
	if err != nil {
		t.Fatalf("ListRecipes() error: %v", err)
	}
	if resp.Total != 2 || len(resp.Recipes) != 2 {
		t.Fatalf("Total = %d, want 2", resp.Total)
	}
	if resp.Recipes[0].ID != "2" || resp.Recipes[1].ID != "3" {
		t.Errorf("order = %s,%s, want 2,3", resp.Recipes[0].ID, resp.Recipes[1].ID)
	}
	if len(resp.Facets.Cuisines) != 3 {
		t.Errorf("Cuisines = %v, want all three", resp.Facets.Cuisines)
	}
}

func TestListRecipes_DescriptionsNotTruncated(t *testing.T) {
	svc := newTestRecipeService()

	resp, err := svc.ListRecipes(context.Background(), search.CatalogFilter{Query: "masala"})
	if err != nil {
		t.Fatalf("ListRecipes() error: %v", err)
	}
	if len(resp.Recipes) != 1 {
		t.Fatalf("len = %d, want 1", len(resp.Recipes))
	}
	if got := len(resp.Recipes[0].Description); got <= search.DescriptionLimit {
		t.Errorf("description length = %d, want untruncated", got)
	}
}

func TestGetRecipe_NotFound(t *testing.T) {
	svc := newTestRecipeService()

	_, err := svc.GetRecipe(context.Background(), "404")
	var nf repository.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("GetRecipe() = %v, want NotFoundError", err)
	}
	if !errors.Is(err, search.ErrRecipeNotFound) {
		t.Errorf("error does not wrap ErrRecipeNotFound")
	}
}

func TestGetRecipe_RepoNotFoundPassesThrough(t *testing.T) {
	svc := NewRecipeService(&testutil.MockRecipeRepo{Recipes: testutil.TestRecipes()})

	_, err := svc.GetRecipe(context.Background(), "404")
	var nf repository.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("GetRecipe() = %v, want NotFoundError", err)
	}

	r, err := svc.GetRecipe(context.Background(), "1")
	if err != nil {
		t.Fatalf("GetRecipe() error: %v", err)
	}
	if r.Name != "Spaghetti Carbonara" {
		t.Errorf("Name = %q", r.Name)
	}
}

func TestGetRecipe_SourceError(t *testing.T) {
	svc := NewRecipeService(&testutil.MockRecipeRepo{Err: errors.New("db down")})

	_, err := svc.GetRecipe(context.Background(), "1")
	var nf repository.NotFoundError
	if err == nil || errors.As(err, &nf) {
		t.Errorf("GetRecipe() = %v, want plain error", err)
	}
}

func TestSearchRecipes_UsesTool(t *testing.T) {
	svc := newTestRecipeService()

	res := svc.SearchRecipes(context.Background(), "vegan")
	if len(res.FoundRecipes) != 1 || res.FoundRecipes[0].ID != "2" {
		t.Fatalf("FoundRecipes = %+v, want [2]", res.FoundRecipes)
	}
	if res.SearchSummary != "Searched for 'vegan'. Found 1 relevant recipe(s)." {
		t.Errorf("SearchSummary = %q", res.SearchSummary)
	}
}

func TestSearchRecipes_SourceFailureAbsorbed(t *testing.T) {
	svc := NewRecipeService(&testutil.MockRecipeRepo{Err: errors.New("db down")})

	res := svc.SearchRecipes(context.Background(), "soup")
	if len(res.FoundRecipes) != 0 {
		t.Errorf("FoundRecipes = %+v, want empty", res.FoundRecipes)
	}
	if res.SearchSummary != search.SummarizeFailure("soup") {
		t.Errorf("SearchSummary = %q", res.SearchSummary)
	}
}

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mealDBLetterA = `{"meals": [{
	"idMeal": "52771", "strMeal": "Spicy Arrabiata Penne", "strCategory": "Vegetarian",
	"strArea": "Italian", "strInstructions": "Bring a large pot of water to a boil.",
	"strMealThumb": "https://example.com/penne.jpg", "strTags": "Pasta,Curry",
	"strIngredient1": "penne rigate", "strIngredient2": "olive oil", "strIngredient3": "",
	"strIngredient4": null
}]}`

func newMealDBServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/search.php" && r.URL.Query().Get("f") == "a":
			w.Write([]byte(mealDBLetterA))
		case r.URL.Path == "/lookup.php" && r.URL.Query().Get("i") == "52771":
			w.Write([]byte(mealDBLetterA))
		default:
			w.Write([]byte(`{"meals": null}`))
		}
	}))
}

func TestMealDBSource_ListRecipes(t *testing.T) {
	srv := newMealDBServer(t)
	defer srv.Close()

	src := NewMealDBSource(srv.URL + "/")
	src.Letters = "ab"

	records, err := src.ListRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "52771", r.ID)
	assert.Equal(t, "Italian", r.Cuisine)
	assert.Equal(t, []string{"penne rigate", "olive oil"}, []string(r.Ingredients))
	assert.Equal(t, []string{"Vegetarian", "Pasta", "Curry"}, []string(r.DietaryTags))
	assert.Nil(t, r.Calories)
}

func TestMealDBSource_GetRecipe(t *testing.T) {
	srv := newMealDBServer(t)
	defer srv.Close()

	src := NewMealDBSource(srv.URL)

	r, err := src.GetRecipe(context.Background(), "52771")
	require.NoError(t, err)
	assert.Equal(t, "Spicy Arrabiata Penne", r.Name)

	_, err = src.GetRecipe(context.Background(), "1")
	assert.ErrorIs(t, err, search.ErrRecipeNotFound)
}

func TestAdaptMeal_UnknownArea(t *testing.T) {
	r := AdaptMeal(map[string]interface{}{"idMeal": "1", "strMeal": "Mystery", "strArea": "Unknown"})
	assert.Empty(t, r.Cuisine)
}

func TestMealDBSource_PayloadTooLarge(t *testing.T) {
	srv := newMealDBServer(t)
	defer srv.Close()

	src := NewMealDBSource(srv.URL)
	src.Letters = "a"
	src.MaxBytes = 64

	_, err := src.ListRecipes(context.Background())
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

package nutrition

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *EdamamClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewEdamamClient("app-id", "app-key")
	c.BaseURL = srv.URL
	return c
}

func TestLookupIngredient(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/nutrition-data", r.URL.Path)
		assert.Equal(t, "app-id", r.URL.Query().Get("app_id"))
		assert.Equal(t, "app-key", r.URL.Query().Get("app_key"))
		assert.Equal(t, "100g chickpeas", r.URL.Query().Get("ingr"))
		w.Write([]byte(`{
			"calories": 164.4,
			"totalNutrients": {
				"PROCNT": {"label": "Protein", "quantity": 8.86, "unit": "g"},
				"FAT": {"label": "Fat", "quantity": 2.59, "unit": "g"},
				"CHOCDF": {"label": "Carbs", "quantity": 27.42, "unit": "g"}
			}
		}`))
	})

	got, err := c.LookupIngredient(context.Background(), " chickpeas ")
	require.NoError(t, err)
	assert.Equal(t, "chickpeas", got.Ingredient)
	assert.Equal(t, float64(164), got.Calories)
	assert.Equal(t, "8.9g", got.Protein)
	assert.Equal(t, "2.6g", got.Fat)
	assert.Equal(t, "27.4g", got.Carbs)
	assert.Equal(t, SourceLabel, got.Source)
}

func TestLookupIngredient_MissingNutrientsRenderZero(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"calories": 0.2, "totalNutrients": {"NA": {"quantity": 0.1}}}`))
	})

	got, err := c.LookupIngredient(context.Background(), "water")
	require.NoError(t, err)
	assert.Equal(t, "0g", got.Protein)
}

func TestLookupIngredient_Unparseable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(555)
	})

	_, err := c.LookupIngredient(context.Background(), "qwzx")
	assert.True(t, errors.Is(err, ErrUnknownIngredient))
}

func TestLookupIngredient_EmptyAnalysis(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"calories": 0, "totalNutrients": {}}`))
	})

	_, err := c.LookupIngredient(context.Background(), "nothing")
	assert.True(t, errors.Is(err, ErrUnknownIngredient))
}

func TestLookupIngredient_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad credentials"}`))
	})

	_, err := c.LookupIngredient(context.Background(), "rice")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnknownIngredient))
	assert.Contains(t, err.Error(), "401")
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/Midoriya12/calsnap/internal/service"
	"github.com/gin-gonic/gin"
)

// RecipeHandler is the handler for recipe catalog requests.
type RecipeHandler struct {
	Service *service.RecipeService
}

// NewRecipeHandler is the constructor function for initializing a new RecipeHandler.
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{Service: recipeService}
}

// ListRecipes returns the catalog filtered by q, cuisine and diet.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := search.CatalogFilter{
		Query:   c.Query("q"),
		Cuisine: strings.TrimSpace(c.Query("cuisine")),
		Dietary: strings.TrimSpace(c.Query("diet")),
	}

	resp, err := h.Service.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to list recipes")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetRecipe returns a recipe by ID.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.Service.GetRecipe(c.Request.Context(), c.Param("recipe_id"))
	if err != nil {
		respondError(c, err, "failed to get recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// SearchRecipes runs the assistant's search tool. Data failures are reported
// in the summary, never as an HTTP error.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var input search.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	c.JSON(http.StatusOK, h.Service.SearchRecipes(c.Request.Context(), input.SearchTerm))
}

package handlers

import (
	"net/http"

	"github.com/Midoriya12/calsnap/internal/service"
	"github.com/gin-gonic/gin"
)

// NutritionHandler is the handler for ingredient nutrition lookups.
type NutritionHandler struct {
	Service *service.NutritionService
}

// NewNutritionHandler is the constructor function for initializing a new NutritionHandler.
func NewNutritionHandler(nutritionService *service.NutritionService) *NutritionHandler {
	return &NutritionHandler{Service: nutritionService}
}

// GetNutrition looks up ?ingredientName=.
func (h *NutritionHandler) GetNutrition(c *gin.Context) {
	info, err := h.Service.GetIngredientNutrition(c.Request.Context(), c.Query("ingredientName"))
	if err != nil {
		respondError(c, err, "Failed to fetch nutritional data")
		return
	}
	c.JSON(http.StatusOK, info)
}

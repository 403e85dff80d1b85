package handlers

import (
	"net/http"

	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/service"
	"github.com/gin-gonic/gin"
)

// MealHandler is the handler for meal photo and saved meal requests.
type MealHandler struct {
	Service *service.MealService
}

// NewMealHandler is the constructor function for initializing a new MealHandler.
func NewMealHandler(mealService *service.MealService) *MealHandler {
	return &MealHandler{Service: mealService}
}

type photoRequest struct {
	PhotoDataURI string `json:"photoDataUri"`
}

// AnalyzeMeal estimates calories, ingredients and a recipe from a photo.
func (h *MealHandler) AnalyzeMeal(c *gin.Context) {
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	est, err := h.Service.AnalyzeMeal(c.Request.Context(), req.PhotoDataURI)
	if err != nil {
		respondError(c, err, "failed to analyze meal")
		return
	}
	c.JSON(http.StatusOK, est)
}

// DetectIngredients lists the ingredients visible in a photo.
func (h *MealHandler) DetectIngredients(c *gin.Context) {
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ingredients, err := h.Service.DetectIngredients(c.Request.Context(), req.PhotoDataURI)
	if err != nil {
		respondError(c, err, "failed to detect ingredients")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// SaveMeal keeps an analysis for the authenticated user.
func (h *MealHandler) SaveMeal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var est models.MealEstimation
	if err := c.ShouldBindJSON(&est); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	meal, err := h.Service.SaveMeal(c.Request.Context(), userID, est)
	if err != nil {
		respondError(c, err, "failed to save meal")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

// ListSavedMeals returns the authenticated user's saved analyses.
func (h *MealHandler) ListSavedMeals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	meals, err := h.Service.ListSavedMeals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list saved meals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// DeleteSavedMeal removes one saved analysis.
func (h *MealHandler) DeleteSavedMeal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteSavedMeal(c.Request.Context(), userID, c.Param("meal_id")); err != nil {
		respondError(c, err, "failed to delete saved meal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted"})
}

package handlers

import (
	"net/http"

	"github.com/Midoriya12/calsnap/internal/service"
	"github.com/gin-gonic/gin"
)

// DailyLogHandler is the handler for daily nutrition log requests.
type DailyLogHandler struct {
	Service *service.DailyLogService
}

// NewDailyLogHandler is the constructor function for initializing a new DailyLogHandler.
func NewDailyLogHandler(dailyLogService *service.DailyLogService) *DailyLogHandler {
	return &DailyLogHandler{Service: dailyLogService}
}

// LogMeal adds an entry to the authenticated user's log.
func (h *DailyLogHandler) LogMeal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req service.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	meal, err := h.Service.LogMeal(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "failed to log meal")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

// GetDailyLog returns one day of the log; date defaults to today.
func (h *DailyLogHandler) GetDailyLog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	day, err := h.Service.GetDailyLog(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		respondError(c, err, "failed to get daily log")
		return
	}
	c.JSON(http.StatusOK, day)
}

// DeleteLoggedMeal removes one log entry.
func (h *DailyLogHandler) DeleteLoggedMeal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteLoggedMeal(c.Request.Context(), userID, c.Param("meal_id")); err != nil {
		respondError(c, err, "failed to delete logged meal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal removed from log"})
}

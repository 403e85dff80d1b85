package router

import (
	"time"

	"github.com/Midoriya12/calsnap/internal/ai"
	"github.com/Midoriya12/calsnap/internal/config"
	"github.com/Midoriya12/calsnap/internal/handlers"
	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/middleware"
	"github.com/Midoriya12/calsnap/internal/repository"
	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/Midoriya12/calsnap/internal/service"
	"github.com/Midoriya12/calsnap/internal/ws"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the collaborators built by the entry point.
type Dependencies struct {
	DB           *gorm.DB
	RecipeSource search.RecipeSource
	MealAnalyzer ai.MealAnalyzer
	ChatProvider ai.ChatProvider
	Nutrition    service.NutritionLookup // nil when Edamam is not configured
	Hub          *ws.Hub
}

// Per-client request rates.
const (
	aiRequestsPerSecond   = 2  // endpoints that call a model, per IP
	userRequestsPerSecond = 10 // authenticated routes, per user
)

// SetupRouter sets up the Gin router.
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	// Create default Gin router
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowCredentials = true
	config.AllowOrigins = []string{
		"https://calsnap.app",
		"https://www.calsnap.app",
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", logger.RequestIDHeader)
	r.Use(cors.New(config))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	aiLimiter := middleware.RateLimitByIP(aiRequestsPerSecond, time.Minute, 5*time.Minute)

	// Recipe catalog setup
	recipeService := service.NewRecipeService(deps.RecipeSource)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// Meal photo setup
	savedMealRepo := repository.NewSavedMealRepository(deps.DB)
	mealService := service.NewMealService(deps.MealAnalyzer, savedMealRepo)
	mealHandler := handlers.NewMealHandler(mealService)

	// Daily log setup
	dailyLogRepo := repository.NewDailyLogRepository(deps.DB)
	dailyLogHandler := handlers.NewDailyLogHandler(service.NewDailyLogService(dailyLogRepo))

	// Assistant setup; the model searches through the same tool as the HTTP route
	chatService := service.NewChatService(deps.ChatProvider, recipeService.Tool)
	chatHandler := handlers.NewChatHandler(chatService)

	nutritionHandler := handlers.NewNutritionHandler(service.NewNutritionService(deps.Nutrition))

	// Group for API routes that don't require token verification
	apiPublic := r.Group("/v1")
	{
		// Recipe-related routes

		// List the catalog with optional q, cuisine and diet filters
		apiPublic.GET("/recipes", recipeHandler.ListRecipes)
		// Get a single recipe by it's ID
		apiPublic.GET("/recipes/:recipe_id", recipeHandler.GetRecipe)
		// Run the assistant's recipe search tool
		apiPublic.POST("/recipes/search", recipeHandler.SearchRecipes)

		// Ingredient nutrition lookup
		apiPublic.GET("/nutrition", nutritionHandler.GetNutrition)

		// Model-backed routes
		apiPublic.POST("/meals/analyze", aiLimiter, mealHandler.AnalyzeMeal)
		apiPublic.POST("/meals/detect-ingredients", aiLimiter, mealHandler.DetectIngredients)
		apiPublic.POST("/chat", aiLimiter, chatHandler.Chat)
	}

	// Group for API routes that require token verification
	apiProtected := r.Group("/v1")
	{
		apiProtected.Use(middleware.VerifyTokenMiddleware(cfg))
		apiProtected.Use(middleware.RateLimitByUser(userRequestsPerSecond, time.Minute, 5*time.Minute))

		// Saved meal analyses
		apiProtected.POST("/meals/saved", mealHandler.SaveMeal)
		apiProtected.GET("/meals/saved", mealHandler.ListSavedMeals)
		apiProtected.DELETE("/meals/saved/:meal_id", mealHandler.DeleteSavedMeal)

		// Daily nutrition log
		apiProtected.POST("/daily-log", dailyLogHandler.LogMeal)
		apiProtected.GET("/daily-log", dailyLogHandler.GetDailyLog)
		apiProtected.DELETE("/daily-log/:meal_id", dailyLogHandler.DeleteLoggedMeal)
	}

	// WebSocket routes (authenticated via query param token)
	hub := deps.Hub
	if hub == nil {
		hub = ws.NewHub()
		go hub.Run()
	}
	wsChatHandler := ws.NewChatHandler(hub, cfg.EnvVars.IdentityJWTSecret, chatService)
	r.GET("/v1/ws/chat", wsChatHandler.HandleChatSession)

	return r
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Midoriya12/calsnap/internal/ai"
	"github.com/Midoriya12/calsnap/internal/config"
	"github.com/Midoriya12/calsnap/internal/db"
	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/router"
	"github.com/Midoriya12/calsnap/internal/setup"
	"github.com/Midoriya12/calsnap/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the API.
func main() {
	defer logger.Sync()

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Get().Fatal("invalid config", zap.Error(err))
	}

	// Load prompts from YAML
	prompts, err := config.LoadPrompts(cfg.EnvVars.PromptsPath)
	if err != nil {
		logger.Get().Fatal("failed to load prompts", zap.Error(err))
	}
	cfg.Prompts = prompts

	// Connect to the database
	database, err := db.New(cfg)
	if err != nil {
		logger.Get().Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := database.DB()
	if err != nil {
		logger.Get().Fatal("failed to get underlying sql.DB", zap.Error(err))
	}
	defer sqlDB.Close()

	ctx := context.Background()

	recipes, err := setup.BuildRecipeSource(ctx, cfg, database)
	if err != nil {
		logger.Get().Fatal("failed to build recipe source", zap.Error(err))
	}
	defer recipes.Close()

	analyzer := ai.NewAnthropicProvider(cfg.EnvVars.AnthropicAPIKey, cfg.Prompts)
	chat, err := setup.BuildChatProvider(cfg, analyzer)
	if err != nil {
		logger.Get().Fatal("failed to build chat provider", zap.Error(err))
	}

	hub := ws.NewHub()
	go hub.Run()

	// Create a new gin router
	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(cfg, router.Dependencies{
		DB:           database,
		RecipeSource: recipes,
		MealAnalyzer: analyzer,
		ChatProvider: chat,
		Nutrition:    setup.BuildNutritionLookup(cfg),
		Hub:          hub,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.EnvVars.Port,
		Handler: r,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Get().Info("starting server", zap.String("port", cfg.EnvVars.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		logger.Get().Fatal("server failed", zap.Error(err))
	case sig := <-quit:
		logger.Get().Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	hub.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Get().Error("server shutdown failed", zap.Error(err))
	}
	logger.Get().Info("server stopped")
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}

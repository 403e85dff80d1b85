package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Midoriya12/calsnap/internal/config"
	"github.com/Midoriya12/calsnap/internal/db"
	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/mcpadapter"
	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/Midoriya12/calsnap/internal/setup"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Serves the recipe search tool over stdio. Logs go to stderr so stdout
// carries only protocol traffic.
func main() {
	logger.Init(os.Getenv("GIN_MODE") != "release")
	defer logger.Sync()
	log := logger.Get()

	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.ValidateRecipeSource(); err != nil {
		log.Fatal("invalid recipe source config", zap.Error(err))
	}

	var database *gorm.DB
	if cfg.EnvVars.RecipeSource == config.RecipeSourceDatabase {
		database, err = db.New(cfg)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		if sqlDB, err := database.DB(); err == nil {
			defer sqlDB.Close()
		}
	}

	recipes, err := setup.BuildRecipeSource(ctx, cfg, database)
	if err != nil {
		log.Fatal("failed to build recipe source", zap.Error(err))
	}
	defer recipes.Close()

	server := mcpadapter.NewServer(search.NewTool(recipes))

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF or "server is closing" means the client hung up.
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			log.Debug("mcp server stopped", zap.Error(err))
			return
		}
		log.Error("mcp server failed", zap.Error(err))
		os.Exit(1)
	}
}

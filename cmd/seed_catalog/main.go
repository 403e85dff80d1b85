package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Midoriya12/calsnap/internal/catalog"
	"github.com/Midoriya12/calsnap/internal/config"
	"github.com/Midoriya12/calsnap/internal/db"
	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/repository"
	catalogs3 "github.com/Midoriya12/calsnap/internal/s3"
	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/Midoriya12/calsnap/internal/setup"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Loads an upstream recipe catalog into Postgres and, with -publish, uploads
// the same snapshot to S3 for the s3 recipe source.
func main() {
	source := flag.String("source", config.RecipeSourceMealDB, "upstream to copy from: mealdb or remote")
	url := flag.String("url", "", "upstream URL; defaults to $MEALDB_BASE_URL or $RECIPE_SOURCE_URL")
	publish := flag.Bool("publish", false, "also upload the snapshot to $S3_BUCKET")
	flag.Parse()

	logger.Init(os.Getenv("GIN_MODE") != "release")
	defer logger.Sync()
	log := logger.Get()

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.EnvVars.DatabaseUrl == "" {
		log.Fatal("$DATABASE_URL must be set")
	}

	var upstream search.RecipeSource
	switch *source {
	case config.RecipeSourceMealDB:
		if *url == "" {
			*url = cfg.EnvVars.MealDBBaseURL
		}
		upstream = catalog.NewMealDBSource(*url)
	case config.RecipeSourceRemote:
		if *url == "" {
			*url = cfg.EnvVars.RecipeSourceURL
		}
		if *url == "" {
			log.Fatal("-url or $RECIPE_SOURCE_URL is required for the remote source")
		}
		upstream = catalog.NewRemoteSource(*url)
	default:
		log.Fatal("unsupported -source", zap.String("source", *source))
	}

	database, err := db.New(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	res, err := setup.SeedCatalog(ctx, upstream, repository.NewRecipeRepository(database))
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	if !*publish {
		return
	}
	if cfg.EnvVars.S3Bucket == "" || cfg.EnvVars.AWSRegion == "" {
		log.Fatal("$S3_BUCKET and $AWS_REGION must be set to publish")
	}
	client, err := catalogs3.NewClient(ctx, cfg)
	if err != nil {
		log.Fatal("failed to create S3 client", zap.Error(err))
	}
	location, err := catalogs3.PublishCatalogSnapshot(ctx, catalogs3.NewUploader(client), cfg.EnvVars.S3Bucket, cfg.EnvVars.CatalogS3Key, res.Records)
	if err != nil {
		log.Fatal("failed to publish snapshot", zap.Error(err))
	}
	log.Info("catalog snapshot published",
		zap.String("location", location),
		zap.Int("recipes", len(res.Records)))
}

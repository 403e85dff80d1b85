package setup

import (
	"context"
	"fmt"

	"github.com/Midoriya12/calsnap/internal/ai"
	"github.com/Midoriya12/calsnap/internal/catalog"
	"github.com/Midoriya12/calsnap/internal/config"
	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/nutrition"
	"github.com/Midoriya12/calsnap/internal/repository"
	"github.com/Midoriya12/calsnap/internal/s3"
	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/Midoriya12/calsnap/internal/service"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecipeSource is the configured catalog plus whatever must be closed with it.
type RecipeSource struct {
	search.RecipeSource
	redis *redis.Client
}

// Close releases the cache connection, if any.
func (s *RecipeSource) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

// BuildRecipeSource selects the catalog backend from $RECIPE_SOURCE. Remote
// backends are wrapped in a circuit breaker and, when $REDIS_URL is set, a
// snapshot cache in front of it. database may be nil for other backends.
func BuildRecipeSource(ctx context.Context, cfg *config.Config, database *gorm.DB) (*RecipeSource, error) {
	e := cfg.EnvVars

	var upstream search.RecipeSource
	switch e.RecipeSource {
	case config.RecipeSourceDatabase:
		if database == nil {
			return nil, fmt.Errorf("recipe source %q needs a database connection", e.RecipeSource)
		}
		return &RecipeSource{RecipeSource: repository.NewRecipeRepository(database)}, nil
	case config.RecipeSourceRemote:
		upstream = catalog.NewRemoteSource(e.RecipeSourceURL)
	case config.RecipeSourceMealDB:
		upstream = catalog.NewMealDBSource(e.MealDBBaseURL)
	case config.RecipeSourceS3:
		client, err := s3.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		upstream = s3.NewCatalogSource(client, e.S3Bucket, e.CatalogS3Key)
	default:
		return nil, fmt.Errorf("unknown recipe source %q", e.RecipeSource)
	}

	src := &RecipeSource{
		RecipeSource: catalog.NewBreakerSource(e.RecipeSource, upstream, catalog.DefaultBreakerConfig()),
	}

	if e.RedisURL != "" {
		client, err := catalog.NewRedisClient(e.RedisURL)
		if err != nil {
			// The catalog still works uncached.
			logger.Get().Warn("catalog cache disabled", zap.Error(err))
		} else {
			src.redis = client
			src.RecipeSource = catalog.NewCachedSource(src.RecipeSource, catalog.NewRedisCache(client), catalog.DefaultCacheKey, e.CatalogCacheTTL)
		}
	}

	if src.redis == nil && e.RecipeSource == config.RecipeSourceMealDB {
		logger.Get().Warn("TheMealDB source is uncached; each search makes one upstream request per letter")
	}

	logger.Get().Info("recipe source ready",
		zap.String("source", e.RecipeSource),
		zap.Bool("cached", src.redis != nil))
	return src, nil
}

// BuildChatProvider selects the assistant model from $CHAT_PROVIDER.
func BuildChatProvider(cfg *config.Config, anthropicProvider *ai.AnthropicProvider) (ai.ChatProvider, error) {
	switch cfg.EnvVars.ChatProvider {
	case config.ChatProviderAnthropic:
		return anthropicProvider, nil
	case config.ChatProviderOpenAI:
		return ai.NewOpenAIChatProvider(openai.DefaultConfig(cfg.EnvVars.OpenAIAPIKey), cfg.Prompts), nil
	default:
		return nil, fmt.Errorf("unknown chat provider %q", cfg.EnvVars.ChatProvider)
	}
}

// BuildNutritionLookup returns the Edamam client, or nil when it is not
// configured.
func BuildNutritionLookup(cfg *config.Config) service.NutritionLookup {
	if cfg.EnvVars.EdamamAppID == "" {
		return nil
	}
	return nutrition.NewEdamamClient(cfg.EnvVars.EdamamAppID, cfg.EnvVars.EdamamAppKey)
}

package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerConfig holds circuit breaker settings for an upstream catalog.
type BreakerConfig struct {
	MaxFailures uint32
	Timeout     time.Duration
	Interval    time.Duration
}

// DefaultBreakerConfig trips after five consecutive failures and probes again
// after thirty seconds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures: 5,
		Timeout:     30 * time.Second,
		Interval:    60 * time.Second,
	}
}

// BreakerSource wraps a RecipeSource with circuit breakers so a failing
// upstream is not hammered on every search.
type BreakerSource struct {
	inner search.RecipeSource
	list  *gobreaker.CircuitBreaker[[]models.RecipeRecord]
	get   *gobreaker.CircuitBreaker[*models.RecipeRecord]
}

// NewBreakerSource wraps inner. name identifies the upstream in logs.
func NewBreakerSource(name string, inner search.RecipeSource, cfg BreakerConfig) *BreakerSource {
	return &BreakerSource{
		inner: inner,
		list:  gobreaker.NewCircuitBreaker[[]models.RecipeRecord](breakerSettings("catalog:"+name+":list", cfg)),
		get:   gobreaker.NewCircuitBreaker[*models.RecipeRecord](breakerSettings("catalog:"+name+":get", cfg)),
	}
}

func breakerSettings(name string, cfg BreakerConfig) gobreaker.Settings {
	maxFailures := cfg.MaxFailures
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Get().Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		// A missing recipe is an answer, not an upstream failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, search.ErrRecipeNotFound)
		},
	}
}

// ListRecipes delegates through the list breaker.
func (b *BreakerSource) ListRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	return b.list.Execute(func() ([]models.RecipeRecord, error) {
		return b.inner.ListRecipes(ctx)
	})
}

// GetRecipe delegates through the lookup breaker.
func (b *BreakerSource) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	return b.get.Execute(func() (*models.RecipeRecord, error) {
		return b.inner.GetRecipe(ctx, id)
	})
}

// State reports the list breaker state.
func (b *BreakerSource) State() gobreaker.State {
	return b.list.State()
}

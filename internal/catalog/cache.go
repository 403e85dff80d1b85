package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultCacheKey is where the catalog snapshot is stored.
const DefaultCacheKey = "calsnap:catalog:recipes"

// Cache is the byte store CachedSource keeps snapshots in.
type Cache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisCache implements Cache on a go-redis client.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// NewRedisClient parses url, connects and pings within five seconds.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// CachedSource serves the catalog from a cached snapshot, refilling it from
// the inner source on a miss. Cache failures are logged and bypassed.
type CachedSource struct {
	inner search.RecipeSource
	cache Cache
	key   string
	ttl   time.Duration
}

// NewCachedSource wraps inner with a snapshot cache.
func NewCachedSource(inner search.RecipeSource, cache Cache, key string, ttl time.Duration) *CachedSource {
	if key == "" {
		key = DefaultCacheKey
	}
	return &CachedSource{inner: inner, cache: cache, key: key, ttl: ttl}
}

// ListRecipes returns the cached snapshot or loads and stores a fresh one.
func (s *CachedSource) ListRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	data, ok, err := s.cache.Get(ctx, s.key)
	if err != nil {
		logger.Get().Warn("catalog cache read failed", zap.String("key", s.key), zap.Error(err))
	}
	if ok {
		var records []models.RecipeRecord
		if err := json.Unmarshal(data, &records); err == nil {
			return records, nil
		}
		logger.Get().Warn("discarding corrupt catalog cache entry", zap.String("key", s.key))
	}

	records, err := s.inner.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if err := s.cache.Set(ctx, s.key, data, s.ttl); err != nil {
			logger.Get().Warn("catalog cache write failed", zap.String("key", s.key), zap.Error(err))
		}
	}
	return records, nil
}

// GetRecipe looks in the snapshot first and falls back to the inner source.
func (s *CachedSource) GetRecipe(ctx context.Context, id string) (*models.RecipeRecord, error) {
	records, err := s.ListRecipes(ctx)
	if err == nil {
		if r, err := findRecipe(records, id); err == nil {
			return r, nil
		}
	}
	return s.inner.GetRecipe(ctx, id)
}

// Invalidate drops the snapshot so the next call reloads it.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key)
}

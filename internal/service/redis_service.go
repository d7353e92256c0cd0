package service

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// redisClient is the subset of *redis.Client the cache relies on.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisService is a JSON read-through cache. Failures are logged and
// treated as misses so callers fall back to the database.
type RedisService struct {
	client redisClient
	logger *logrus.Logger
	tracer trace.Tracer
}

func NewRedisService(client redisClient, logger *logrus.Logger) *RedisService {
	return &RedisService{client, logger, otel.Tracer("RedisService")}
}

// Get returns the cached JSON stored under key.
func (r *RedisService) Get(ctx context.Context, key string) (string, bool) {
	spanCtx, span := r.tracer.Start(ctx, "RedisService.Get")
	defer span.End()

	logger := r.logger.WithContext(spanCtx).WithField("key", key)

	cached, err := r.client.Get(spanCtx, key).Result()
	if errors.Is(err, redis.Nil) {
		logger.Debug("Cache miss")
		return "", false
	}
	if err != nil {
		logger.WithError(err).Error("Failed to read from redis")
		return "", false
	}

	logger.Debug("Cache hit")
	return cached, true
}

// Set marshals data to JSON, stores it with ttl and returns the JSON.
func (r *RedisService) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) (string, error) {
	spanCtx, span := r.tracer.Start(ctx, "RedisService.Set")
	defer span.End()

	logger := r.logger.WithContext(spanCtx).WithField("key", key)

	payload, err := json.Marshal(data)
	if err != nil {
		logger.WithError(err).Warn("Failed to marshal cache value")
		return "", err
	}
	if err := r.client.Set(spanCtx, key, payload, ttl).Err(); err != nil {
		logger.WithError(err).Error("Failed to store data to redis")
		return "", err
	}

	return string(payload), nil
}

// Delete evicts key. A missing key is not an error.
func (r *RedisService) Delete(ctx context.Context, key string) error {
	spanCtx, span := r.tracer.Start(ctx, "RedisService.Delete")
	defer span.End()

	if err := r.client.Del(spanCtx, key).Err(); err != nil {
		r.logger.WithContext(spanCtx).WithError(err).WithField("key", key).Error("Failed to evict cache entry")
		return err
	}
	return nil
}

package redis

import (
	"context"
	"time"

	"koala-user-service/internal/config/env"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	dialTimeout  = 5 * time.Second
	readTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
)

// NewRedis initializes the client backing the refresh-token store and the profile cache.
func NewRedis(log *logrus.Logger, config *env.Config) *redis.Client {
	rdb := redis.NewClient(newOptions(config))

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	log.WithField("addr", config.Redis.Address).Info("Redis connection established successfully")
	return rdb
}

func newOptions(config *env.Config) *redis.Options {
	pool := config.Redis.Pool
	return &redis.Options{
		Addr:     config.Redis.Address,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,

		PoolSize:        pool.Size,
		MinIdleConns:    pool.MinIdle,
		MaxIdleConns:    pool.MaxIdle,
		ConnMaxLifetime: time.Duration(pool.Lifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(pool.IdleTimeout) * time.Second,

		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/config"
)

// NewRedisClient connects to Redis and verifies the connection. Callers may
// treat Redis as optional; a missing address returns (nil, nil) and disables
// caching and rate limiting.
func NewRedisClient(cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		log.Named("redis").Info("no redis address configured, caching disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Named("redis").Info("connected to Redis", zap.String("addr", cfg.RedisAddr))
	return client, nil
}

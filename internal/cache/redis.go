// Package cache manages the Redis client used for rate limiting.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis initializes the Redis client from an address or redis:// URL.
// A connection failure is not fatal: the rate limiter fails open without
// Redis, so the app keeps serving.
func InitRedis(addr string, logger *slog.Logger) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			logger.Warn("invalid REDIS_URL, continuing without redis",
				slog.String("url", addr),
				slog.String("error", err.Error()),
			)
			client = nil
			return
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, continuing without redis",
			slog.String("error", err.Error()),
		)
		client = nil
		return
	}
	logger.Info("redis connected")
}

// GetClient returns the current Redis client instance, or nil when Redis
// is unavailable.
func GetClient() *redis.Client {
	return client
}

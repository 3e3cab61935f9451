package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"gstbook/internal/config"
)

const maxConnectAttempts = 5

// NewClient connects to Redis, retrying with exponential backoff capped at
// 30s. It gives up after maxConnectAttempts failed pings.
func NewClient(ctx context.Context, cfg *config.RedisConfig, logger logrus.FieldLogger) (*redis.Client, error) {
	var lastErr error
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: 100,
		})
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			logger.WithFields(logrus.Fields{"attempt": attempt, "addr": cfg.Addr}).Info("connected to redis")
			return client, nil
		}
		_ = client.Close()

		if attempt == maxConnectAttempts {
			break
		}
		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		logger.WithFields(logrus.Fields{"attempt": attempt, "addr": cfg.Addr, "retry_in": sleep}).
			WithError(lastErr).Warn("failed to connect redis")
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("redisstore.NewClient: %w", ctx.Err())
		case <-time.After(sleep):
		}
	}
	return nil, fmt.Errorf("redisstore.NewClient: %s: %w", cfg.Addr, lastErr)
}

// Pinger adapts a Redis client to the readiness check.
type Pinger struct {
	Client redis.UniversalClient
}

// PingContext implements handler.Pinger.
func (p Pinger) PingContext(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

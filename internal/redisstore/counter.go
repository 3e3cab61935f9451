// Package redisstore holds the Redis-backed invoice counter and shop lock.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gstbook/internal/port"
)

const counterKeyPrefix = "gstbook:invoice_counter:"

// Counter keeps each shop's last issued invoice counter under its own key
// and allocates with INCR. A key that does not exist yet is seeded from the
// shop's settings, so switching backends continues the existing sequence.
type Counter struct {
	client   redis.Cmdable
	settings port.SettingsRepository
}

var _ port.InvoiceCounter = (*Counter)(nil)

// NewCounter creates a Redis-backed InvoiceCounter.
func NewCounter(client redis.Cmdable, settings port.SettingsRepository) *Counter {
	return &Counter{client: client, settings: settings}
}

func counterKey(shop string) string {
	return counterKeyPrefix + shop
}

func (c *Counter) Current(ctx context.Context, shop string) (int, error) {
	last, err := c.client.Get(ctx, counterKey(shop)).Int()
	if errors.Is(err, redis.Nil) {
		s, err := c.settings.GetByShop(ctx, shop)
		if err != nil {
			return 0, err
		}
		return s.InvoiceCounter, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis counter current: %w", err)
	}
	return last + 1, nil
}

func (c *Counter) Next(ctx context.Context, shop string) (int, error) {
	if err := c.seed(ctx, shop); err != nil {
		return 0, err
	}
	n, err := c.client.Incr(ctx, counterKey(shop)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis counter incr: %w", err)
	}
	return int(n), nil
}

func (c *Counter) Reset(ctx context.Context, shop string, next int) error {
	if err := c.client.Set(ctx, counterKey(shop), next-1, 0).Err(); err != nil {
		return fmt.Errorf("redis counter reset: %w", err)
	}
	return nil
}

// seed writes the starting value with SETNX so racing seeders agree.
func (c *Counter) seed(ctx context.Context, shop string) error {
	n, err := c.client.Exists(ctx, counterKey(shop)).Result()
	if err != nil {
		return fmt.Errorf("redis counter exists: %w", err)
	}
	if n > 0 {
		return nil
	}
	s, err := c.settings.GetByShop(ctx, shop)
	if err != nil {
		return err
	}
	if err := c.client.SetNX(ctx, counterKey(shop), s.InvoiceCounter-1, 0).Err(); err != nil {
		return fmt.Errorf("redis counter seed: %w", err)
	}
	return nil
}

package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"

	"gstbook/internal/port"
)

const lockKeyPrefix = "lock:invoice:"

// Locker is a best-effort per-shop lock. When the lock cannot be obtained the
// caller proceeds unlocked; the counter allocation is atomic on its own.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
	logger logrus.FieldLogger
}

var _ port.ShopLocker = (*Locker)(nil)

// NewLocker creates a Locker. ttl bounds how long a crashed holder blocks others.
func NewLocker(client redislock.RedisClient, ttl time.Duration, logger logrus.FieldLogger) *Locker {
	return &Locker{client: redislock.New(client), ttl: ttl, logger: logger}
}

func (l *Locker) Acquire(ctx context.Context, shop string) (func(), error) {
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 20),
	}
	lock, err := l.client.Obtain(ctx, lockKeyPrefix+shop, l.ttl, opts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		fields := logrus.Fields{"component": "redisstore.Locker", "shop": shop}
		if errors.Is(err, redislock.ErrNotObtained) {
			l.logger.WithFields(fields).Warn("could not obtain shop lock; proceeding without lock")
		} else {
			l.logger.WithFields(fields).WithError(err).Warn("error obtaining shop lock; proceeding without lock")
		}
		return func() {}, nil
	}

	return func() {
		// Release with a fresh context: the request context may already be done.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.WithFields(logrus.Fields{"component": "redisstore.Locker", "shop": shop}).
				WithError(err).Warn("releasing shop lock")
		}
	}, nil
}

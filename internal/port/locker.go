package port

import "context"

// ShopLocker serializes work for one shop across service instances.
// Acquire returns a release func; implementations may be best-effort.
type ShopLocker interface {
	Acquire(ctx context.Context, shop string) (release func(), err error)
}

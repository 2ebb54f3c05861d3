package cache

import (
	"context"
	"time"
)

// PageCache keeps rendered pages for a bounded time. Entries disappear
// only when their ttl runs out or the cache is cleared.
type PageCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}

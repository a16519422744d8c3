package cache

import (
	"context"
	"time"
)

// Cache is the expiring key/value store the weather service depends on.
// Implementations must apply lazy expiry: a Get on an entry whose expiry
// has passed removes the entry and reports absent. Misses are not errors,
// and a corrupt stored entry is treated the same as a miss.
type Cache interface {
	// Get returns the stored value for key if it has not expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key with expiry = now + ttl, overwriting
	// any prior entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Clear removes the entry for key unconditionally.
	Clear(ctx context.Context, key string)
}

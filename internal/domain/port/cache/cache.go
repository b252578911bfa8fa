package cache

import (
	"context"
	"time"
)

// Cache is a read-through cache for hot listings (shop pages, wallet views).
// Implementations serialize values as JSON; a miss is not an error.
type Cache interface {
	// Get loads the value at key into dest, reporting whether the key existed
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores a value under key with the given TTL
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the given keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
}

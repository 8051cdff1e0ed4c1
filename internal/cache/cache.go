// Package cache defines the shared byte store behind the view cache.
package cache

import (
	"context"
	"time"
)

// Store is a remote key/value store. Get reports a missing key as ok=false
// with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

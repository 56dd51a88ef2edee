package cache

import (
	"context"
	"time"
)

// Store is a string key-value store with per-key expiration
type Store interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	// Get returns false when the key is missing or expired
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

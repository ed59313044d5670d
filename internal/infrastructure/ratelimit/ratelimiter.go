// Package ratelimit enforces request quotas over rolling time windows.
package ratelimit

import (
	"context"
	"time"
)

// RateLimiter answers whether a client identified by key may perform
// another request within the given window.
type RateLimiter interface {
	// Allow records the request and reports whether it fits the limit.
	Allow(ctx context.Context, key string, window time.Duration, limit int) (bool, error)
	// GetRemaining reports how many requests the key has left in the window.
	GetRemaining(ctx context.Context, key string, window time.Duration, limit int) (int, error)
	// Reset clears all recorded requests for the key.
	Reset(ctx context.Context, key string) error
}

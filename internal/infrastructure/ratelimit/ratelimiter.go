package ratelimit

import (
	"context"
	"time"
)

// RateLimiter counts requests per key in a sliding window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Remaining(ctx context.Context, key string, limit int, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

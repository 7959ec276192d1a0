package ratelimit

import (
	"context"
	"time"
)

// Rule allows Limit requests per Window. A non-positive Limit disables it.
type Rule struct {
	Limit  int
	Window time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, rule Rule) (bool, error)
	// Count reports requests recorded for key inside the window.
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

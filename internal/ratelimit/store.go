// Package ratelimit implements sliding-window request limiting, from the
// single-key Limiter up to the policy engine driving the API middleware.
package ratelimit

import (
	"context"
	"time"
)

// Store counts requests per key over a sliding window.
type Store interface {
	// Record adds the current request to the key's window and returns how
	// many requests the window now holds, expired entries excluded.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

package ratelimit

import (
	"context"
	"time"
)

// Limiter defines the interface for rate limiting.
type Limiter interface {
	// Allow checks if a request from the given key should be allowed.
	// A denial is a normal outcome, not an error; a non-nil error means
	// the underlying store could not answer and must never be treated
	// as a rate-limit denial.
	Allow(ctx context.Context, key string) (allowed bool, err error)
}

// SlidingWindowLimiter implements rate limiting using a sliding window algorithm.
//
// Each named instance tracks its keys independently: exhausting the "auth"
// limiter for a user has no effect on the "write" limiter for the same user.
type SlidingWindowLimiter struct {
	store  Store
	name   string
	limit  int64
	window time.Duration
}

// NewSlidingWindowLimiter creates a new sliding window rate limiter.
// The name namespaces all keys so that independent limiter instances
// sharing one store never collide.
func NewSlidingWindowLimiter(store Store, name string, limit int64, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		store:  store,
		name:   name,
		limit:  limit,
		window: window,
	}
}

func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Record(ctx, l.name+":"+key, l.window)
	if err != nil {
		return false, err
	}

	return count <= l.limit, nil
}

package store

import (
	"context"
	"sync"
	"time"
)

// RateLimitMemoryStore keeps a per-key rolling log of request times. It
// backs ratelimit.Store in tests and single-process deployments.
type RateLimitMemoryStore struct {
	mu   sync.Mutex
	logs map[string][]time.Time
}

func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		logs: make(map[string][]time.Time),
	}
}

func (s *RateLimitMemoryStore) Record(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-window)

	// Entries are appended in order, so everything before the first
	// in-window timestamp drops off in one cut.
	log := s.logs[key]

	start := 0
	for start < len(log) && !log[start].After(cutoff) {
		start++
	}

	log = append(log[start:], now)
	s.logs[key] = log

	return int64(len(log)), nil
}

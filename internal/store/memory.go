package store

import (
	"context"
	"sync"
	"time"

	"github.com/ostracon-app/ostracon/internal/guard"
)

// GuardMemoryStore is an in-memory implementation of guard.Store, used in
// tests and single-process runs.
type GuardMemoryStore struct {
	mu       sync.Mutex
	pins     map[string]string
	locks    map[string]string
	attempts map[string]*attemptEntry
}

type attemptEntry struct {
	count     int64
	expiresAt time.Time
}

// NewGuardMemoryStore creates a new in-memory guard store.
func NewGuardMemoryStore() *GuardMemoryStore {
	return &GuardMemoryStore{
		pins:     make(map[string]string),
		locks:    make(map[string]string),
		attempts: make(map[string]*attemptEntry),
	}
}

func (s *GuardMemoryStore) SetPinHash(_ context.Context, userID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pins[userID] = hash

	return nil
}

func (s *GuardMemoryStore) GetPinHash(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, ok := s.pins[userID]
	if !ok {
		return "", guard.ErrNotFound
	}

	return hash, nil
}

func (s *GuardMemoryStore) DeletePin(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pins, userID)
	delete(s.locks, userID)

	return nil
}

func (s *GuardMemoryStore) SetLock(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locks[userID] = "true"

	return nil
}

func (s *GuardMemoryStore) ClearLock(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, userID)

	return nil
}

func (s *GuardMemoryStore) GetLock(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.locks[userID]
	if !ok {
		return "", guard.ErrNotFound
	}

	return raw, nil
}

func (s *GuardMemoryStore) IncrAttempts(_ context.Context, userID string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	entry, ok := s.attempts[userID]
	if !ok || now.After(entry.expiresAt) {
		entry = &attemptEntry{expiresAt: now.Add(ttl)}
		s.attempts[userID] = entry
	}

	entry.count++

	return entry.count, nil
}

func (s *GuardMemoryStore) GetAttempts(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.attempts[userID]
	if !ok || time.Now().After(entry.expiresAt) {
		return 0, nil
	}

	return entry.count, nil
}

func (s *GuardMemoryStore) ResetAttempts(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.attempts, userID)

	return nil
}

// Compile-time check.
var _ guard.Store = (*GuardMemoryStore)(nil)

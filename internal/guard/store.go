package guard

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store implementations when a key is absent.
var ErrNotFound = errors.New("guard: not found")

// Store is the key-value backing for PIN credentials, lock flags, and attempt
// counters. Implementations must provide atomic single-key increment and TTL
// semantics; no operation spans more than a small fixed set of keys and no
// cross-key atomicity is required.
type Store interface {
	// SetPinHash stores the PIN hash for a user, overwriting any prior value.
	SetPinHash(ctx context.Context, userID, hash string) error

	// GetPinHash returns the stored PIN hash, or ErrNotFound when the user
	// has no PIN credential.
	GetPinHash(ctx context.Context, userID string) (string, error)

	// DeletePin removes the PIN credential and the lock flag together. The
	// two deletes need not be atomic: a crash in between leaves the PIN gone
	// and the lock set, which fails safe (the user can no longer unlock).
	DeletePin(ctx context.Context, userID string) error

	// SetLock marks the user locked. Idempotent.
	SetLock(ctx context.Context, userID string) error

	// ClearLock removes the lock flag. Idempotent.
	ClearLock(ctx context.Context, userID string) error

	// GetLock returns the raw stored lock value, or ErrNotFound when the
	// user is not locked. The on-wire encoding is the string "true" when
	// locked and key absence when not.
	GetLock(ctx context.Context, userID string) (string, error)

	// IncrAttempts atomically increments the failed-attempt counter and
	// returns the post-increment count. The first increment after the
	// counter expired or was reset arms the TTL.
	IncrAttempts(ctx context.Context, userID string, ttl time.Duration) (int64, error)

	// GetAttempts returns the current attempt count; zero when the counter
	// is absent or expired.
	GetAttempts(ctx context.Context, userID string) (int64, error)

	// ResetAttempts deletes the attempt counter.
	ResetAttempts(ctx context.Context, userID string) error
}

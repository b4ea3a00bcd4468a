// Package guard implements the account lock subsystem: a 4-digit PIN that
// gates the application's sensitive mode, with attempt counting and a rolling
// lockout window for brute-force protection. All state lives in an external
// key-value store; the guard itself is stateless and safe for concurrent use.
package guard

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"regexp"
	"time"
)

const (
	// MaxAttempts is the number of unlock attempts permitted per lockout window.
	MaxAttempts = 5

	// LockoutWindow is how long failed attempts accumulate before the
	// counter expires on its own.
	LockoutWindow = 15 * time.Minute

	// lockedValue is the raw string stored for a locked account. Key
	// absence means unlocked.
	lockedValue = "true"
)

// ErrInvalidPin is returned when a submitted PIN is not exactly four ASCII digits.
var ErrInvalidPin = errors.New("guard: pin must be exactly 4 digits")

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// Guard manages PIN credentials, lock state, and unlock attempt budgets for
// user accounts.
type Guard struct {
	store         Store
	maxAttempts   int64
	lockoutWindow time.Duration
}

// New creates a Guard backed by the given store with the default attempt
// budget and lockout window.
func New(store Store) *Guard {
	return &Guard{
		store:         store,
		maxAttempts:   MaxAttempts,
		lockoutWindow: LockoutWindow,
	}
}

// SetPin validates and stores a PIN credential for the user, replacing any
// existing one. The PIN is hashed before it is stored; the plaintext never
// reaches the store. Returns ErrInvalidPin without touching the store when
// the PIN is malformed.
func (g *Guard) SetPin(ctx context.Context, userID, pin string) error {
	if !pinPattern.MatchString(pin) {
		return ErrInvalidPin
	}

	return g.store.SetPinHash(ctx, userID, hashPin(pin))
}

// HasPin reports whether a PIN credential exists for the user.
func (g *Guard) HasPin(ctx context.Context, userID string) (bool, error) {
	_, err := g.store.GetPinHash(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// Lock marks the account locked. Idempotent; no PIN needs to exist.
func (g *Guard) Lock(ctx context.Context, userID string) error {
	return g.store.SetLock(ctx, userID)
}

// Unlock clears the lock flag. It does not reset the attempt counter; the
// unlock flow does that separately on success.
func (g *Guard) Unlock(ctx context.Context, userID string) error {
	return g.store.ClearLock(ctx, userID)
}

// RemovePin deletes the PIN credential and clears the lock flag as one
// logical operation. A user without a PIN cannot remain meaningfully locked.
func (g *Guard) RemovePin(ctx context.Context, userID string) error {
	return g.store.DeletePin(ctx, userID)
}

// IsLocked reports the current lock state.
func (g *Guard) IsLocked(ctx context.Context, userID string) (bool, error) {
	locked, _, err := g.LockStatus(ctx, userID)

	return locked, err
}

// LockStatus reports the lock state together with the raw stored value
// (empty string when the flag is absent).
func (g *Guard) LockStatus(ctx context.Context, userID string) (bool, string, error) {
	raw, err := g.store.GetLock(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, "", nil
		}

		return false, "", err
	}

	return raw == lockedValue, raw, nil
}

// VerifyPin hashes the candidate PIN and compares it against the stored
// credential in constant time. Returns false, not an error, when no
// credential exists. Read-only: it neither records an attempt nor touches
// lock state.
func (g *Guard) VerifyPin(ctx context.Context, userID, pin string) (bool, error) {
	stored, err := g.store.GetPinHash(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(hashPin(pin))) == 1, nil
}

// RecordAttempt counts one unlock attempt against the user's budget and
// returns the post-increment count. The first attempt after a reset arms the
// lockout-window TTL so the counter expires on its own.
func (g *Guard) RecordAttempt(ctx context.Context, userID string) (int64, error) {
	return g.store.IncrAttempts(ctx, userID, g.lockoutWindow)
}

// RemainingAttempts returns how many unlock attempts the user has left in
// the current lockout window, never below zero.
func (g *Guard) RemainingAttempts(ctx context.Context, userID string) (int64, error) {
	count, err := g.store.GetAttempts(ctx, userID)
	if err != nil {
		return 0, err
	}

	remaining := g.maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	return remaining, nil
}

// ResetAttempts clears the attempt counter immediately.
func (g *Guard) ResetAttempts(ctx context.Context, userID string) error {
	return g.store.ResetAttempts(ctx, userID)
}

func hashPin(pin string) string {
	sum := sha256.Sum256([]byte(pin))

	return hex.EncodeToString(sum[:])
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/ostracon-app/ostracon/internal/guard"
	"github.com/redis/go-redis/v9"
)

// GuardRedisStore is the Redis implementation of guard.Store.
//
// Key layout (kept bit-for-bit compatible with existing stored state):
//
//	user:<id>:pin      PIN hash, no TTL
//	user:<id>:lock     "true" when locked, absent otherwise
//	user:<id>:attempts integer counter, TTL = lockout window
type GuardRedisStore struct {
	client *redis.Client
}

// NewGuardRedisStore creates a new Redis-backed guard store.
func NewGuardRedisStore(client *redis.Client) *GuardRedisStore {
	return &GuardRedisStore{client: client}
}

func (s *GuardRedisStore) SetPinHash(ctx context.Context, userID, hash string) error {
	return s.client.Set(ctx, pinKey(userID), hash, 0).Err()
}

func (s *GuardRedisStore) GetPinHash(ctx context.Context, userID string) (string, error) {
	hash, err := s.client.Get(ctx, pinKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", guard.ErrNotFound
		}

		return "", err
	}

	return hash, nil
}

func (s *GuardRedisStore) DeletePin(ctx context.Context, userID string) error {
	// Pipelined but not transactional: losing the lock delete after the pin
	// delete fails safe (no PIN means no way to unlock anyway).
	pipe := s.client.Pipeline()
	pipe.Del(ctx, pinKey(userID))
	pipe.Del(ctx, lockKey(userID))
	_, err := pipe.Exec(ctx)

	return err
}

func (s *GuardRedisStore) SetLock(ctx context.Context, userID string) error {
	return s.client.Set(ctx, lockKey(userID), "true", 0).Err()
}

func (s *GuardRedisStore) ClearLock(ctx context.Context, userID string) error {
	return s.client.Del(ctx, lockKey(userID)).Err()
}

func (s *GuardRedisStore) GetLock(ctx context.Context, userID string) (string, error) {
	raw, err := s.client.Get(ctx, lockKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", guard.ErrNotFound
		}

		return "", err
	}

	return raw, nil
}

func (s *GuardRedisStore) IncrAttempts(ctx context.Context, userID string, ttl time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, attemptsKey(userID)).Result()
	if err != nil {
		return 0, err
	}

	// Arm the TTL only on the first hit of a fresh counter.
	if count == 1 {
		if err := s.client.Expire(ctx, attemptsKey(userID), ttl).Err(); err != nil {
			return 0, err
		}
	}

	return count, nil
}

func (s *GuardRedisStore) GetAttempts(ctx context.Context, userID string) (int64, error) {
	count, err := s.client.Get(ctx, attemptsKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, err
	}

	return count, nil
}

func (s *GuardRedisStore) ResetAttempts(ctx context.Context, userID string) error {
	return s.client.Del(ctx, attemptsKey(userID)).Err()
}

func pinKey(userID string) string {
	return "user:" + userID + ":pin"
}

func lockKey(userID string) string {
	return "user:" + userID + ":lock"
}

func attemptsKey(userID string) string {
	return "user:" + userID + ":attempts"
}

// Compile-time check.
var _ guard.Store = (*GuardRedisStore)(nil)

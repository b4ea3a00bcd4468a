package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ostracon-app/ostracon/internal/guard"
	"github.com/ostracon-app/ostracon/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestGuardRedisStore_PinHash(t *testing.T) {
	t.Run("stores the hash under the user pin key", func(t *testing.T) {
		mr, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		err := s.SetPinHash(context.Background(), "u1", "abc123")
		require.NoError(t, err)

		raw, err := mr.Get("user:u1:pin")
		require.NoError(t, err)
		assert.Equal(t, "abc123", raw)
	})

	t.Run("returns ErrNotFound for a missing pin", func(t *testing.T) {
		_, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		_, err := s.GetPinHash(context.Background(), "u1")
		assert.ErrorIs(t, err, guard.ErrNotFound)
	})

	t.Run("round trips the stored hash", func(t *testing.T) {
		_, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		require.NoError(t, s.SetPinHash(context.Background(), "u1", "deadbeef"))

		hash, err := s.GetPinHash(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "deadbeef", hash)
	})
}

func TestGuardRedisStore_Lock(t *testing.T) {
	t.Run("encodes locked as the string true", func(t *testing.T) {
		mr, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		require.NoError(t, s.SetLock(context.Background(), "u1"))

		raw, err := mr.Get("user:u1:lock")
		require.NoError(t, err)
		assert.Equal(t, "true", raw)
	})

	t.Run("encodes unlocked as key absence", func(t *testing.T) {
		mr, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		require.NoError(t, s.SetLock(context.Background(), "u1"))
		require.NoError(t, s.ClearLock(context.Background(), "u1"))

		assert.False(t, mr.Exists("user:u1:lock"))

		_, err := s.GetLock(context.Background(), "u1")
		assert.ErrorIs(t, err, guard.ErrNotFound)
	})
}

func TestGuardRedisStore_DeletePin(t *testing.T) {
	t.Run("removes pin and lock together", func(t *testing.T) {
		mr, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		require.NoError(t, s.SetPinHash(context.Background(), "u1", "abc"))
		require.NoError(t, s.SetLock(context.Background(), "u1"))

		require.NoError(t, s.DeletePin(context.Background(), "u1"))

		assert.False(t, mr.Exists("user:u1:pin"))
		assert.False(t, mr.Exists("user:u1:lock"))
	})
}

func TestGuardRedisStore_Attempts(t *testing.T) {
	t.Run("increments atomically", func(t *testing.T) {
		_, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		for i := int64(1); i <= 3; i++ {
			count, err := s.IncrAttempts(context.Background(), "u1", 15*time.Minute)
			require.NoError(t, err)
			assert.Equal(t, i, count)
		}

		count, err := s.GetAttempts(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("arms the lockout window TTL on the first hit", func(t *testing.T) {
		mr, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		_, err := s.IncrAttempts(context.Background(), "u1", 15*time.Minute)
		require.NoError(t, err)

		assert.Equal(t, 15*time.Minute, mr.TTL("user:u1:attempts"))

		// Later hits must not extend the window.
		mr.FastForward(10 * time.Minute)

		_, err = s.IncrAttempts(context.Background(), "u1", 15*time.Minute)
		require.NoError(t, err)

		assert.Equal(t, 5*time.Minute, mr.TTL("user:u1:attempts"))
	})

	t.Run("counter expires after the lockout window", func(t *testing.T) {
		mr, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		for range 5 {
			_, err := s.IncrAttempts(context.Background(), "u1", 15*time.Minute)
			require.NoError(t, err)
		}

		mr.FastForward(15*time.Minute + time.Second)

		count, err := s.GetAttempts(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		// The next attempt starts a fresh count.
		count, err = s.IncrAttempts(context.Background(), "u1", 15*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("reset deletes the counter", func(t *testing.T) {
		mr, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		_, err := s.IncrAttempts(context.Background(), "u1", 15*time.Minute)
		require.NoError(t, err)

		require.NoError(t, s.ResetAttempts(context.Background(), "u1"))

		assert.False(t, mr.Exists("user:u1:attempts"))
	})

	t.Run("missing counter reads as zero", func(t *testing.T) {
		_, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		count, err := s.GetAttempts(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestGuardRedisStore_Unavailable(t *testing.T) {
	t.Run("surfaces store errors instead of defaulting", func(t *testing.T) {
		mr, client := newTestRedis(t)
		s := store.NewGuardRedisStore(client)

		mr.Close()

		_, err := s.GetPinHash(context.Background(), "u1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, guard.ErrNotFound)
	})
}

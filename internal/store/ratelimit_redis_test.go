package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/ostracon-app/ostracon/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitRedisStore_Record(t *testing.T) {
	t.Run("counts requests in the window", func(t *testing.T) {
		_, client := newTestRedis(t)
		s := store.NewRateLimitRedisStore(client)

		for i := int64(1); i <= 5; i++ {
			count, err := s.Record(context.Background(), "k", time.Minute)
			require.NoError(t, err)
			assert.Equal(t, i, count)
		}
	})

	t.Run("tracks keys independently", func(t *testing.T) {
		_, client := newTestRedis(t)
		s := store.NewRateLimitRedisStore(client)

		for range 5 {
			_, err := s.Record(context.Background(), "a", time.Minute)
			require.NoError(t, err)
		}

		count, err := s.Record(context.Background(), "b", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("prunes entries outside the window", func(t *testing.T) {
		_, client := newTestRedis(t)
		s := store.NewRateLimitRedisStore(client)

		for range 3 {
			_, err := s.Record(context.Background(), "k", 50*time.Millisecond)
			require.NoError(t, err)
		}

		time.Sleep(60 * time.Millisecond)

		// The old entries have slid out of the window; only the new
		// request counts.
		count, err := s.Record(context.Background(), "k", 50*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("namespaces keys under the ratelimit prefix", func(t *testing.T) {
		mr, client := newTestRedis(t)
		s := store.NewRateLimitRedisStore(client)

		_, err := s.Record(context.Background(), "k", time.Minute)
		require.NoError(t, err)

		assert.True(t, mr.Exists("ratelimit:k"))
	})

	t.Run("surfaces store errors", func(t *testing.T) {
		mr, client := newTestRedis(t)
		s := store.NewRateLimitRedisStore(client)

		mr.Close()

		_, err := s.Record(context.Background(), "k", time.Minute)
		assert.Error(t, err)
	})
}

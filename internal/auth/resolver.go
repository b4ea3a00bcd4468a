// Package auth models the boundary to the identity collaborator: it resolves
// an opaque session token to a user id. Session provisioning happens
// elsewhere; every endpoint here only needs resolution.
package auth

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when a token does not map to a live session.
var ErrNoSession = errors.New("auth: no session")

// Resolver resolves a session token to the authenticated user id.
type Resolver interface {
	Resolve(ctx context.Context, token string) (userID string, err error)
}

// RedisResolver resolves sessions stored as session:<token> -> user id.
type RedisResolver struct {
	client *redis.Client
	prefix string
}

// NewRedisResolver creates a new Redis-backed session resolver.
func NewRedisResolver(client *redis.Client) *RedisResolver {
	return &RedisResolver{
		client: client,
		prefix: "session:",
	}
}

func (r *RedisResolver) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNoSession
	}

	userID, err := r.client.Get(ctx, r.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}

		return "", err
	}

	return userID, nil
}

// Compile-time check.
var _ Resolver = (*RedisResolver)(nil)

// Package health exposes the liveness endpoint.
package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts a redis client to Checker.
type RedisChecker struct {
	client *redis.Client
}

func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler serves the health endpoint.
type Handler struct {
	redis Checker
}

func NewHandler(redis Checker) *Handler {
	return &Handler{redis: redis}
}

// Response reports overall status plus per-dependency detail.
type Response struct {
	Body struct {
		Status string `json:"status"`
		Redis  string `json:"redis"`
	}
}

// Check pings redis. Every PIN, lock and attempt counter lives there, so an
// unreachable redis degrades the whole service.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Redis = "healthy"

	if err := h.redis.Ping(ctx); err != nil {
		resp.Body.Status = "degraded"
		resp.Body.Redis = "unhealthy"
	}

	return resp, nil
}

// RegisterRoutes mounts the health endpoint.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}

package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ostracon-app/ostracon/internal/auth"
	"github.com/ostracon-app/ostracon/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimiter applies a single limiter instance to every request passing
// through it. Attached per-operation for endpoints that carry their own
// budget, such as unlock.
func RateLimiter(api huma.API, limiter ratelimit.Limiter) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		allowed, err := limiter.Allow(ctx.Context(), clientKey(ctx))
		if err != nil {
			// A broken store reads as an outage, never as a denial.
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !allowed {
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")

			return
		}

		next(ctx)
	}
}

// PolicyRateLimiter enforces the rate limit policy across the whole API.
// Operations can opt out, swap their scope, or carry their own limits via
// metadata under ratelimit.MetadataKey.
func PolicyRateLimiter(
	api huma.API,
	limiter *ratelimit.PolicyLimiter,
	resolver ratelimit.ScopeResolver,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cfg := ratelimit.GetEndpointConfig(ctx)

		if cfg != nil && cfg.Disabled {
			next(ctx)

			return
		}

		if cfg != nil && len(cfg.Limits) > 0 {
			if applyCustomLimits(api, ctx, limiter.Store(), cfg.Limits, logger) {
				next(ctx)
			}

			return
		}

		allowed, exceeded, err := limiter.Allow(ctx.Context(), clientKey(ctx), resolver.Resolve(ctx))
		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("path", operationPath(ctx)),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !allowed {
			if exceeded != nil {
				logger.Warn("rate limit exceeded",
					zap.String("path", operationPath(ctx)),
					zap.String("method", ctx.Method()),
					zap.String("scope", string(exceeded.Scope)),
					zap.Int64("count", exceeded.Count),
					zap.Int64("max", exceeded.Config.Max),
					zap.Duration("window", exceeded.Config.Window),
				)
			}

			// The client only learns to slow down; window sizes stay server-side.
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")

			return
		}

		next(ctx)
	}
}

// applyCustomLimits records the request under an endpoint's own limits.
// Counters are keyed by the route template, so every request to the
// operation shares one budget per client. Reports whether the request may
// proceed; on denial or store failure the response has already been written.
func applyCustomLimits(
	api huma.API,
	ctx huma.Context,
	store ratelimit.Store,
	limits []ratelimit.LimitConfig,
	logger *zap.Logger,
) bool {
	op := ctx.Operation()
	if op == nil {
		_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error",
			errors.New("no operation in context"))

		return false
	}

	key := clientKey(ctx)

	for _, limit := range limits {
		counter := fmt.Sprintf("%s:custom:%s:%d", key, op.Path, limit.Window.Milliseconds())

		count, err := store.Record(ctx.Context(), counter, limit.Window)
		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("path", op.Path),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return false
		}

		if count > limit.Max {
			logger.Warn("rate limit exceeded",
				zap.String("path", op.Path),
				zap.String("method", ctx.Method()),
				zap.Int64("count", count),
				zap.Int64("max", limit.Max),
				zap.Duration("window", limit.Window),
			)
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")

			return false
		}
	}

	return true
}

func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}

// clientKey identifies the throttled principal: the authenticated user when
// a session resolved, otherwise a fingerprint of address and user agent.
func clientKey(ctx huma.Context) string {
	if userID, ok := auth.UserIDFromContext(ctx.Context()); ok {
		return "user:" + userID
	}

	sum := sha256.Sum256([]byte(clientIP(ctx) + "|" + ctx.Header("User-Agent")))

	return "anon:" + hex.EncodeToString(sum[:])
}

// clientIP resolves the originating address, trusting proxy headers first.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		// First entry is the original client.
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.Host()

	ip, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}

	return ip
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ostracon-app/ostracon/internal/auth"
	"go.uber.org/zap"
)

// Authenticate resolves the bearer session token and attaches the user id to
// the request context. Requests without a live session pass through without
// one; handlers decide whether that is a 401. A store failure during
// resolution is a hard 500 so it is never mistaken for "not logged in".
func Authenticate(api huma.API, resolver auth.Resolver, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := bearerToken(ctx)
		if token == "" {
			next(ctx)

			return
		}

		userID, err := resolver.Resolve(ctx.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrNoSession) {
				next(ctx)

				return
			}

			logger.Error("session resolution failed", zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		newCtx := auth.ContextWithUserID(ctx.Context(), userID)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

func bearerToken(ctx huma.Context) string {
	header := ctx.Header("Authorization")
	if header == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(header[len(prefix):])
}

package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ostracon-app/ostracon/internal/ratelimit"
)

// RegisterRoutes registers the PIN endpoints with per-endpoint rate limit
// configuration. unlockMiddlewares are applied to the unlock operation only;
// the container uses this to attach the dedicated auth attempt limiter.
func RegisterRoutes(api huma.API, pinHandler *PinHandler, unlockMiddlewares ...func(huma.Context, func(huma.Context))) {
	huma.Register(api, huma.Operation{
		OperationID: "check-pin",
		Method:      http.MethodGet,
		Path:        "/api/pin/check-pin",
		Summary:     "Check PIN presence",
		Description: "Reports whether the authenticated user has a PIN credential.",
		Tags:        []string{"PIN"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Scope: ratelimit.ScopeRead,
			},
		},
	}, pinHandler.CheckPin)

	huma.Register(api, huma.Operation{
		OperationID: "check-lock",
		Method:      http.MethodGet,
		Path:        "/api/pin/check-lock",
		Summary:     "Check lock state",
		Description: "Reports whether the authenticated user's account is locked.",
		Tags:        []string{"PIN"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Scope: ratelimit.ScopeRead,
			},
		},
	}, pinHandler.CheckLock)

	huma.Register(api, huma.Operation{
		OperationID: "set-pin",
		Method:      http.MethodPost,
		Path:        "/api/pin/set",
		Summary:     "Set PIN",
		Description: "Stores a 4-digit PIN for the authenticated user, replacing any existing one.",
		Tags:        []string{"PIN"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 60},
				},
			},
		},
	}, pinHandler.SetPin)

	huma.Register(api, huma.Operation{
		OperationID: "lock-account",
		Method:      http.MethodPost,
		Path:        "/api/pin/lock",
		Summary:     "Lock account",
		Description: "Marks the authenticated user's account locked.",
		Tags:        []string{"PIN"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Scope: ratelimit.ScopeAuth,
			},
		},
	}, pinHandler.Lock)

	huma.Register(api, huma.Operation{
		OperationID: "remove-pin",
		Method:      http.MethodPost,
		Path:        "/api/pin/remove",
		Summary:     "Remove PIN",
		Description: "Deletes the PIN credential and clears the lock state together.",
		Tags:        []string{"PIN"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
				},
			},
		},
	}, pinHandler.Remove)

	huma.Register(api, huma.Operation{
		OperationID: "unlock-account",
		Method:      http.MethodPost,
		Path:        "/api/pin/unlock",
		Summary:     "Unlock account",
		Description: "Attempts to unlock the account with a PIN. Every attempt, right or wrong, consumes budget.",
		Tags:        []string{"PIN"},
		Middlewares: unlockMiddlewares,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				// The unlock operation carries its own attempt limiter; the
				// policy middleware only applies the global scope here.
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 30},
				},
			},
		},
	}, pinHandler.Unlock)
}

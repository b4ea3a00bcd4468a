package ratelimit

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Scope buckets requests for rate limiting. A request can sit in several
// scopes at once and must stay under the limits of all of them.
type Scope string

const (
	// ScopeGlobal covers every request.
	ScopeGlobal Scope = "global"
	// ScopeRead covers safe methods (GET, HEAD, OPTIONS).
	ScopeRead Scope = "read"
	// ScopeWrite covers mutating methods.
	ScopeWrite Scope = "write"
	// ScopeAuth covers credential-sensitive operations such as unlock.
	ScopeAuth Scope = "auth"
)

// MetadataKey is where per-endpoint rate limit config lives in huma
// operation metadata.
const MetadataKey = "rateLimit"

// EndpointConfig tunes rate limiting for a single operation, attached via
// the operation's Metadata under MetadataKey.
type EndpointConfig struct {
	// Scope replaces method-based scope detection. Ignored when Limits is
	// set, because custom limits bypass the policy entirely.
	Scope Scope

	// Limits, when non-empty, replaces the policy limits for this endpoint.
	Limits []LimitConfig

	// Disabled turns rate limiting off for this endpoint.
	Disabled bool
}

// ScopeResolver decides which scopes a request falls into.
type ScopeResolver interface {
	Resolve(ctx huma.Context) []Scope
}

// MethodScopeResolver classifies requests as read or write by HTTP method.
type MethodScopeResolver struct{}

func NewMethodScopeResolver() *MethodScopeResolver {
	return &MethodScopeResolver{}
}

func (r *MethodScopeResolver) Resolve(ctx huma.Context) []Scope {
	switch ctx.Method() {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return []Scope{ScopeGlobal, ScopeRead}
	default:
		return []Scope{ScopeGlobal, ScopeWrite}
	}
}

// OperationScopeResolver honors a scope override in operation metadata and
// falls back to method-based classification otherwise.
type OperationScopeResolver struct {
	fallback *MethodScopeResolver
}

func NewOperationScopeResolver() *OperationScopeResolver {
	return &OperationScopeResolver{
		fallback: NewMethodScopeResolver(),
	}
}

func (r *OperationScopeResolver) Resolve(ctx huma.Context) []Scope {
	if cfg := GetEndpointConfig(ctx); cfg != nil && cfg.Scope != "" {
		return []Scope{ScopeGlobal, cfg.Scope}
	}

	return r.fallback.Resolve(ctx)
}

// GetEndpointConfig reads the EndpointConfig out of the current operation's
// metadata, or nil when none is attached.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}

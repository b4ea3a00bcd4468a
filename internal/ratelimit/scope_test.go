package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/ostracon-app/ostracon/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextFor(method string, op *huma.Operation) huma.Context {
	req := httptest.NewRequest(method, "/test", nil)

	return humatest.NewContext(op, req, httptest.NewRecorder())
}

func TestMethodScopeResolver(t *testing.T) {
	resolver := ratelimit.NewMethodScopeResolver()

	t.Run("classifies reads", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
			scopes := resolver.Resolve(contextFor(method, nil))

			assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead}, scopes, method)
		}
	})

	t.Run("classifies writes", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			scopes := resolver.Resolve(contextFor(method, nil))

			assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}, scopes, method)
		}
	})
}

func TestOperationScopeResolver(t *testing.T) {
	resolver := ratelimit.NewOperationScopeResolver()

	t.Run("falls back to method detection without metadata", func(t *testing.T) {
		scopes := resolver.Resolve(contextFor(http.MethodPost, &huma.Operation{}))

		assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}, scopes)
	})

	t.Run("uses the configured scope", func(t *testing.T) {
		op := &huma.Operation{
			Metadata: map[string]any{
				ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeAuth},
			},
		}

		scopes := resolver.Resolve(contextFor(http.MethodPost, op))

		assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeAuth}, scopes)
	})

	t.Run("ignores metadata of the wrong type", func(t *testing.T) {
		op := &huma.Operation{
			Metadata: map[string]any{ratelimit.MetadataKey: "bogus"},
		}

		scopes := resolver.Resolve(contextFor(http.MethodGet, op))

		assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead}, scopes)
	})
}

func TestGetEndpointConfig(t *testing.T) {
	t.Run("returns nil without metadata", func(t *testing.T) {
		assert.Nil(t, ratelimit.GetEndpointConfig(contextFor(http.MethodGet, &huma.Operation{})))
	})

	t.Run("extracts the config", func(t *testing.T) {
		op := &huma.Operation{
			Metadata: map[string]any{
				ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
			},
		}

		cfg := ratelimit.GetEndpointConfig(contextFor(http.MethodGet, op))

		require.NotNil(t, cfg)
		assert.True(t, cfg.Disabled)
	})
}

package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ostracon-app/ostracon/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) Ping(context.Context) error {
	return s.err
}

func TestHandler_Check(t *testing.T) {
	cases := []struct {
		name       string
		pingErr    error
		wantStatus string
		wantRedis  string
	}{
		{"reachable redis", nil, "ok", "healthy"},
		{"unreachable redis", errors.New("connection refused"), "degraded", "unhealthy"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := health.NewHandler(&stubChecker{err: tc.pingErr})

			resp, err := handler.Check(context.Background(), nil)

			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.Body.Status)
			assert.Equal(t, tc.wantRedis, resp.Body.Redis)
		})
	}
}

package anubis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server, cfg Config) *Client {
	cfg.BaseURL = srv.URL
	if cfg.IntrospectPath == "" {
		cfg.IntrospectPath = "/v1/auth/introspect"
	}
	return NewClient(srv.Client(), cfg, logging.NewNop())
}

func TestClientVerifyAccessToken_SendsAdminKeyAndParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/auth/introspect", r.URL.Path)
		assert.Equal(t, "admin-secret", r.Header.Get("x-admin-key"))

		var req map[string]string
		assert.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "token-abc", req["token"])

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-123",
			"email":   "tecnico@lnf.com.br",
			"roles":   []string{"viewer", "Admin"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{AdminKey: "admin-secret"})

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	require.NoError(t, err)
	assert.Equal(t, "user-123", principal.UserID)
	assert.Equal(t, "tecnico@lnf.com.br", principal.Email)
	assert.Equal(t, user.RoleAdmin, principal.Role)
	assert.True(t, principal.IsAdmin())
}

func TestClientVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":false}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{})

	_, err := client.VerifyAccessToken(context.Background(), "expired")
	require.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestClientVerifyAccessToken_DeniedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{})

	_, err := client.VerifyAccessToken(context.Background(), "forged")
	require.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{})

	_, err := client.VerifyAccessToken(context.Background(), "   ")
	require.ErrorIs(t, err, usecase.ErrUnauthorized)
	assert.Zero(t, calls.Load())
}

func TestClientVerifyAccessToken_CachesPrincipal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"active":true,"user_id":"user-9"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{CacheTTL: time.Minute})

	for i := 0; i < 3; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "token-cached")
		require.NoError(t, err)
		assert.Equal(t, "user-9", principal.UserID)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientVerifyAccessToken_CircuitBreakerOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token-x")
		require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	}

	_, err := client.VerifyAccessToken(context.Background(), "token-x")
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientVerifyAccessToken_DeniedTokensDoNotTripBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient(srv, Config{
		CircuitBreaker: CircuitBreakerConfig{Enabled: true, FailureThreshold: 1},
	})

	for i := 0; i < 3; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token-denied")
		require.ErrorIs(t, err, usecase.ErrUnauthorized)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "joins with slash", base: "https://anubis.local/", path: "v1/auth/introspect", want: "https://anubis.local/v1/auth/introspect"},
		{name: "absolute path wins", base: "https://anubis.local", path: "https://other.local/x", want: "https://other.local/x"},
		{name: "empty path", base: "https://anubis.local/", path: "", want: "https://anubis.local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildURL(tt.base, tt.path))
		})
	}
}

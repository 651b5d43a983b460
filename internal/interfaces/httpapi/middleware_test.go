package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	principals map[string]user.Principal
	err        error
}

func (f *fakeVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if f.err != nil {
		return user.Principal{}, f.err
	}
	principal, ok := f.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

type fakeAuthorizer struct {
	admins map[string]bool
	err    error
}

func (f *fakeAuthorizer) IsAdmin(_ context.Context, principal user.Principal) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.admins[principal.UserID], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	verifier := &fakeVerifier{principals: map[string]user.Principal{
		"token-1": {UserID: "user-1"},
	}}

	var seen user.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAuth(verifier, next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic token-1", wantStatus: http.StatusUnauthorized},
		{name: "bearer without token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer token-2", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "bearer token-1", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/lineups/current", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	assert.Equal(t, "user-1", seen.UserID)
}

func TestRequireAuth_IdentityServiceDown(t *testing.T) {
	verifier := &fakeVerifier{err: fmt.Errorf("%w: anubis circuit open", usecase.ErrDependencyUnavailable)}
	handler := RequireAuth(verifier, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/lineups/current", nil)
	req.Header.Set("Authorization", "Bearer token-1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	authorizer := &fakeAuthorizer{admins: map[string]bool{"admin-1": true}}
	handler := RequireAdmin(authorizer, okHandler())

	serve := func(ctx context.Context) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/rounds", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(context.Background()))
	assert.Equal(t, http.StatusForbidden, serve(withPrincipal(context.Background(), user.Principal{UserID: "user-1"})))
	assert.Equal(t, http.StatusOK, serve(withPrincipal(context.Background(), user.Principal{UserID: "admin-1"})))

	authorizer.err = fmt.Errorf("%w: get user: timeout", usecase.ErrDependencyUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, serve(withPrincipal(context.Background(), user.Principal{UserID: "admin-1"})))
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://lnf-fantasy.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	req.Header.Set("Origin", "https://lnf-fantasy.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://lnf-fantasy.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORS_OptionsPreflight(t *testing.T) {
	handler := CORS([]string{"*"}, okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/lineups/current", nil)
	req.Header.Set("Origin", "https://lnf-fantasy.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://allowed.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "} {
		assert.False(t, shouldTraceRequest(path), path)
	}
	for _, path := range []string{"/v1/players", "/v1/admin/rounds", "/", "/docs"} {
		assert.True(t, shouldTraceRequest(path), path)
	}
}

func TestRateLimit(t *testing.T) {
	limiter := NewClientRateLimiter(1, 2)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }
	handler := RateLimit(limiter, okHandler())

	serve := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, serve("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, serve("10.0.0.1:5001").Code)

	limited := serve("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, serve("10.0.0.2:5000").Code)

	fixed = fixed.Add(time.Second)
	assert.Equal(t, http.StatusOK, serve("10.0.0.1:5003").Code)
}

func TestRateLimit_NilLimiterDisablesCheck(t *testing.T) {
	handler := RateLimit(nil, okHandler())

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestResolveClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "fly header wins", headers: map[string]string{"Fly-Client-IP": "203.0.113.9", "X-Forwarded-For": "198.51.100.1"}, remote: "10.0.0.1:80", want: "203.0.113.9"},
		{name: "first forwarded hop", headers: map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.2"}, remote: "10.0.0.1:80", want: "198.51.100.1"},
		{name: "remote addr fallback", remote: "192.0.2.7:4431", want: "192.0.2.7"},
		{name: "garbage header skipped", headers: map[string]string{"X-Real-IP": "not-an-ip"}, remote: "192.0.2.8:1", want: "192.0.2.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, resolveClientIP(req))
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

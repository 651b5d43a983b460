package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/config"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, srv)
	assert.NoError(t, StopPprofServer(context.Background(), srv, logging.NewNop()))
}

func TestPprofMux(t *testing.T) {
	mux := newPprofMux()

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{name: "index", method: http.MethodGet, path: "/debug/pprof/", want: http.StatusOK},
		{name: "named heap profile", method: http.MethodGet, path: "/debug/pprof/heap?debug=1", want: http.StatusOK},
		{name: "cmdline", method: http.MethodGet, path: "/debug/pprof/cmdline", want: http.StatusOK},
		{name: "writes rejected", method: http.MethodDelete, path: "/debug/pprof/", want: http.StatusMethodNotAllowed},
		{name: "outside prefix", method: http.MethodGet, path: "/v1/players", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

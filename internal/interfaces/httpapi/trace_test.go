package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRouteAttributes(t *testing.T) {
	var got []attribute.KeyValue
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/admin/rounds/{roundID}/finalize", func(_ http.ResponseWriter, r *http.Request) {
		got = routeAttributes(r)
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/admin/rounds/round-7/finalize", nil))

	require.Len(t, got, 2)
	assert.Equal(t, attribute.String("http.route", "POST /v1/admin/rounds/{roundID}/finalize"), got[0])
	assert.Equal(t, attribute.String("lnf.round_id", "round-7"), got[1])
}

func TestRouteAttributes_UnroutedRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	assert.Empty(t, routeAttributes(req))
}

func TestStartHandlerSpan_RequiresTracedParent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	ctx, span := startHandlerSpan(req, "ListPlayers")
	defer span.End()

	assert.Equal(t, req.Context(), ctx)
	assert.False(t, span.SpanContext().IsValid())
}

func TestStartHandlerSpan_ChildOfServerSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	parentCtx, parent := provider.Tracer("test").Start(context.Background(), "GET /v1/players")
	req := httptest.NewRequest(http.MethodGet, "/v1/players", nil).WithContext(parentCtx)
	_, child := startHandlerSpan(req, "ListPlayers")
	child.End()
	parent.End()

	assert.True(t, child.SpanContext().IsValid())
	assert.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID())
}

package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("lnf-fantasy/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startHandlerSpan opens a child of the otelhttp server span named after the
// handler and tagged with the matched route and its path identifiers.
// Untraced requests get a no-op span.
func startHandlerSpan(r *http.Request, handler string) (context.Context, trace.Span) {
	ctx := r.Context()
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, "httpapi.Handler."+handler, trace.WithAttributes(routeAttributes(r)...))
}

func routeAttributes(r *http.Request) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if r.Pattern != "" {
		attrs = append(attrs, attribute.String("http.route", r.Pattern))
	}
	if id := r.PathValue("roundID"); id != "" {
		attrs = append(attrs, attribute.String("lnf.round_id", id))
	}
	if id := r.PathValue("playerID"); id != "" {
		attrs = append(attrs, attribute.String("lnf.player_id", id))
	}
	if id := r.PathValue("teamID"); id != "" {
		attrs = append(attrs, attribute.String("lnf.team_id", id))
	}
	return attrs
}

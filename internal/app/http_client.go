package app

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// otelTransport propagates trace context to outbound calls such as Anubis.
func otelTransport() http.RoundTripper {
	return otelhttp.NewTransport(http.DefaultTransport)
}

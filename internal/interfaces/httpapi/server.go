package httpapi

import (
	"net/http"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	RateLimiter        *ClientRateLimiter
}

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	authorizer AdminAuthorizer,
	logger *logging.Logger,
	cfg RouterConfig,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerMarketRoutes(mux, handler)
	registerLineupRoutes(mux, handler, verifier)
	registerAdminRoutes(mux, handler, verifier, authorizer)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, RateLimit(cfg.RateLimiter, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerMarketRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}/price-history", handler.GetPlayerPriceHistory)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/ranking", handler.GetRanking)
	mux.HandleFunc("GET /v1/rounds", handler.ListRounds)
	mux.HandleFunc("GET /v1/rounds/{roundID}", handler.GetRound)
	mux.HandleFunc("GET /v1/rounds/{roundID}/valuation", handler.GetRoundValuation)
	mux.HandleFunc("GET /v1/rounds/{roundID}/valuation/export", handler.ExportRoundValuation)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/lineups/current", RequireAuth(verifier, http.HandlerFunc(handler.GetCurrentLineup)))
	mux.Handle("PUT /v1/lineups/current", RequireAuth(verifier, http.HandlerFunc(handler.SaveCurrentLineup)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, authorizer AdminAuthorizer) {
	admin := func(next http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(authorizer, next))
	}

	mux.Handle("POST /v1/admin/rounds", admin(handler.CreateRound))
	mux.Handle("POST /v1/admin/rounds/{roundID}/open", admin(handler.OpenRound))
	mux.Handle("POST /v1/admin/rounds/{roundID}/finalize", admin(handler.FinalizeRound))
	// Re-run support for a finalize that aborted half way.
	mux.Handle("POST /v1/admin/rounds/{roundID}/revaluation", admin(handler.RunRevaluation))
	mux.Handle("POST /v1/admin/rounds/{roundID}/reconciliation", admin(handler.RunReconciliation))
	mux.Handle("POST /v1/admin/rounds/{roundID}/statistics", admin(handler.RecordStatistic))
	mux.Handle("GET /v1/admin/rounds/{roundID}/statistics", admin(handler.ListStatistics))
	mux.Handle("POST /v1/admin/teams", admin(handler.CreateTeam))
	mux.Handle("DELETE /v1/admin/teams/{teamID}", admin(handler.DeleteTeam))
	mux.Handle("POST /v1/admin/players", admin(handler.CreatePlayer))
	mux.Handle("DELETE /v1/admin/players/{playerID}", admin(handler.DeletePlayer))
	mux.Handle("POST /v1/admin/players/price-reset", admin(handler.ResetPrices))
	mux.Handle("POST /v1/admin/balances/reset", admin(handler.ResetBalances))
}

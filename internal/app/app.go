package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/config"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/fantasy"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/infrastructure/account/anubis"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/interfaces/httpapi"
	idgen "github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/id"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/usecase"
)

// App owns the HTTP server and the resources it has to release on shutdown.
type App struct {
	Server *http.Server
	logger *logging.Logger
	close  func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	rules := fantasy.DefaultRules()
	rules.StartingBalance = cfg.StartingBalance
	ids := idgen.NewUUIDGenerator()

	revaluationSvc := usecase.NewRevaluationService(repos.rounds, repos.stats, repos.history, repos.players, cfg.ValuationMaxWorkers, logger)
	portfolioSvc := usecase.NewPortfolioService(repos.rounds, repos.lineups, repos.players, repos.users, cfg.ValuationMaxWorkers, logger)
	roundSvc := usecase.NewRoundService(repos.rounds, repos.users, revaluationSvc, portfolioSvc, ids, cfg.StartingBalance, logger)
	playerSvc := usecase.NewPlayerService(repos.players, repos.teams, ids, cfg.PriceResetDefault, logger)
	teamSvc := usecase.NewTeamService(repos.teams, repos.players, ids, logger)
	dashboardSvc := usecase.NewDashboardService(repos.users)
	statisticsSvc := usecase.NewStatisticsService(repos.rounds, repos.players, repos.stats, ids, logger)
	lineupSvc := usecase.NewLineupService(repos.rounds, repos.players, repos.lineups, repos.users, ids, rules, logger)
	reportSvc := usecase.NewValuationReportService(repos.rounds, repos.history, repos.players, repos.teams, cfg.ReportDefaultLimit)
	accessSvc := usecase.NewAccessService(repos.users)

	anubisClient := anubis.NewClient(
		&http.Client{Transport: otelTransport(), Timeout: cfg.AnubisTimeout},
		anubis.Config{
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectPath,
			AdminKey:       cfg.AnubisAdminKey,
			CacheTTL:       cfg.AnubisPrincipalCacheTTL,
			CircuitBreaker: anubis.CircuitBreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
		},
		logger,
	)

	var limiter *httpapi.ClientRateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = httpapi.NewClientRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	handler := httpapi.NewHandler(playerSvc, teamSvc, roundSvc, revaluationSvc, portfolioSvc, statisticsSvc, lineupSvc, reportSvc, dashboardSvc, logger)
	router := httpapi.NewRouter(handler, anubisClient, accessSvc, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        limiter,
	})

	logger.Info("application wired",
		"store_driver", cfg.StoreDriver,
		"cache_enabled", cfg.CacheEnabled,
		"valuation_max_workers", cfg.ValuationMaxWorkers,
		"rate_limit_rps", cfg.RateLimitRPS,
	)

	return &App{
		Server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       2 * time.Minute,
		},
		logger: logger,
		close:  repos.close,
	}, nil
}

// Shutdown drains in-flight requests before releasing the store.
func (a *App) Shutdown(ctx context.Context) error {
	serverErr := a.Server.Shutdown(ctx)
	if a.close != nil {
		if err := a.close(); err != nil {
			a.logger.ErrorContext(ctx, "close store failed", "error", err)
			if serverErr == nil {
				return err
			}
		}
	}
	return serverErr
}

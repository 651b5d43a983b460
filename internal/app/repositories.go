package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/config"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/lineup"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/playerstats"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/pricehistory"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/team"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	cacherepo "github.com/MatheusCrestaniBastos/LnfFantasy/internal/infrastructure/repository/cache"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/infrastructure/repository/memory"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/infrastructure/repository/postgres"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/cache"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	players player.Repository
	teams   team.Repository
	rounds  round.Repository
	users   user.Repository
	lineups lineup.Repository
	stats   playerstats.Repository
	history pricehistory.Repository
	close   func() error
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if cfg.DBSeedOnStart {
			if err := postgres.BootstrapSeed(ctx, db, time.Now()); err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
			logger.InfoContext(ctx, "postgres seed applied")
		}
		repos = postgresRepositories(db)
	default:
		repos = memoryRepositories(time.Now())
		logger.WarnContext(ctx, "using in-memory store, data is lost on restart")
	}

	if cfg.CacheEnabled {
		repos.teams = cacherepo.NewTeamRepository(repos.teams, cache.NewStore[[]team.Team](cfg.CacheTTL))
	}
	return repos, nil
}

func memoryRepositories(now time.Time) repositories {
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	return repositories{
		players: players,
		teams:   memory.NewTeamRepository(memory.SeedTeams()),
		rounds:  memory.NewRoundRepository(memory.SeedRounds(now)),
		users:   memory.NewUserRepository(nil),
		lineups: memory.NewLineupRepository(),
		stats:   memory.NewPlayerStatsRepository(players),
		history: memory.NewPriceHistoryRepository(),
		close:   func() error { return nil },
	}
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		players: postgres.NewPlayerRepository(db),
		teams:   postgres.NewTeamRepository(db),
		rounds:  postgres.NewRoundRepository(db),
		users:   postgres.NewUserRepository(db),
		lineups: postgres.NewLineupRepository(db),
		stats:   postgres.NewPlayerStatsRepository(db),
		history: postgres.NewPriceHistoryRepository(db),
		close:   db.Close,
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

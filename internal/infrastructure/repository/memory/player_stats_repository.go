package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/playerstats"
)

type playerLookup interface {
	GetByID(ctx context.Context, playerID string) (player.Player, bool, error)
}

type PlayerStatsRepository struct {
	mu      sync.RWMutex
	items   map[string]playerstats.Statistic
	players playerLookup
}

func NewPlayerStatsRepository(players playerLookup) *PlayerStatsRepository {
	return &PlayerStatsRepository{
		items:   make(map[string]playerstats.Statistic),
		players: players,
	}
}

func (r *PlayerStatsRepository) Insert(_ context.Context, stat playerstats.Statistic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(stat.PlayerID, stat.RoundID)
	if _, ok := r.items[key]; ok {
		return playerstats.ErrDuplicateStatistic
	}
	r.items[key] = stat
	return nil
}

func (r *PlayerStatsRepository) ListByRound(_ context.Context, roundID string) ([]playerstats.Statistic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byRound(roundID), nil
}

// ListPerformancesByRound joins statistics with players; statistics whose
// player no longer exists are dropped, matching the inner join in postgres.
func (r *PlayerStatsRepository) ListPerformancesByRound(ctx context.Context, roundID string) ([]playerstats.Performance, error) {
	r.mu.RLock()
	stats := r.byRound(roundID)
	r.mu.RUnlock()

	out := make([]playerstats.Performance, 0, len(stats))
	for _, stat := range stats {
		p, ok, err := r.players.GetByID(ctx, stat.PlayerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, playerstats.Performance{Statistic: stat, Player: p})
	}
	return out, nil
}

func (r *PlayerStatsRepository) byRound(roundID string) []playerstats.Statistic {
	out := make([]playerstats.Statistic, 0)
	for _, stat := range r.items {
		if stat.RoundID == roundID {
			out = append(out, stat)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

func pairKey(a, b string) string {
	return a + "::" + b
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/lineup"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Lineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[string]lineup.Lineup)}
}

func (r *LineupRepository) GetByUserAndRound(_ context.Context, userID, roundID string) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[pairKey(userID, roundID)]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return cloneLineup(item), true, nil
}

func (r *LineupRepository) ListByRound(_ context.Context, roundID string) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Lineup, 0)
	for _, item := range r.items {
		if item.RoundID == roundID {
			out = append(out, cloneLineup(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *LineupRepository) Upsert(_ context.Context, item lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[pairKey(item.UserID, item.RoundID)] = cloneLineup(item)
	return nil
}

func cloneLineup(item lineup.Lineup) lineup.Lineup {
	copied := item
	copied.Slots = append([]lineup.Slot(nil), item.Slots...)
	return copied
}

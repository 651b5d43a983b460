package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/pricehistory"
)

type PriceHistoryRepository struct {
	mu    sync.RWMutex
	items map[string]pricehistory.Entry
}

func NewPriceHistoryRepository() *PriceHistoryRepository {
	return &PriceHistoryRepository{items: make(map[string]pricehistory.Entry)}
}

// Upsert keeps the original CreatedAt of an existing (player, round) row.
func (r *PriceHistoryRepository) Upsert(_ context.Context, entry pricehistory.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(entry.PlayerID, entry.RoundID)
	if existing, ok := r.items[key]; ok {
		entry.CreatedAt = existing.CreatedAt
	}
	r.items[key] = entry
	return nil
}

func (r *PriceHistoryRepository) ListByRound(_ context.Context, roundID string) ([]pricehistory.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pricehistory.Entry, 0)
	for _, entry := range r.items {
		if entry.RoundID == roundID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *PriceHistoryRepository) ListMovers(ctx context.Context, roundID string, direction pricehistory.Direction, limit int) ([]pricehistory.Entry, error) {
	entries, _ := r.ListByRound(ctx, roundID)

	out := make([]pricehistory.Entry, 0, len(entries))
	for _, entry := range entries {
		switch {
		case direction == pricehistory.DirectionUp && entry.Delta.IsPositive():
			out = append(out, entry)
		case direction == pricehistory.DirectionDown && entry.Delta.IsNegative():
			out = append(out, entry)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if direction == pricehistory.DirectionUp {
			return out[i].Delta.GreaterThan(out[j].Delta)
		}
		return out[i].Delta.LessThan(out[j].Delta)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PriceHistoryRepository) ListByPlayer(_ context.Context, playerID string, limit int) ([]pricehistory.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pricehistory.Entry, 0)
	for _, entry := range r.items {
		if entry.PlayerID == playerID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

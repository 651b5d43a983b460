package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
)

type RoundRepository struct {
	mu    sync.RWMutex
	items map[string]round.Round
	now   func() time.Time
}

func NewRoundRepository(items []round.Round) *RoundRepository {
	r := &RoundRepository{items: make(map[string]round.Round, len(items)), now: time.Now}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *RoundRepository) Create(_ context.Context, item round.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return fmt.Errorf("round %s already exists", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *RoundRepository) GetByID(_ context.Context, roundID string) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[roundID]
	return item, ok, nil
}

func (r *RoundRepository) List(_ context.Context) ([]round.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(), nil
}

func (r *RoundRepository) GetLatestByStatus(_ context.Context, status round.Status) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.sorted() {
		if item.Status == status {
			return item, true, nil
		}
	}
	return round.Round{}, false, nil
}

func (r *RoundRepository) UpdateStatus(_ context.Context, roundID string, status round.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[roundID]
	if !ok {
		return fmt.Errorf("round %s not found", roundID)
	}
	item.Status = status
	item.UpdatedAt = r.now().UTC()
	r.items[roundID] = item
	return nil
}

// sorted returns rounds newest first; callers hold the lock.
func (r *RoundRepository) sorted() []round.Round {
	out := make([]round.Round, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

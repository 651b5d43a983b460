package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	"github.com/shopspring/decimal"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUserRepository(items []user.User) *UserRepository {
	r := &UserRepository{items: make(map[string]user.User, len(items))}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	return item, ok, nil
}

func (r *UserRepository) ListRanking(_ context.Context, limit int) ([]user.User, error) {
	r.mu.RLock()
	out := make([]user.User, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalPoints.Equal(out[j].TotalPoints) {
			return out[i].TotalPoints.GreaterThan(out[j].TotalPoints)
		}
		if out[i].TeamName != out[j].TeamName {
			return out[i].TeamName < out[j].TeamName
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *UserRepository) Create(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.items[item.ID] = item
	}
	return nil
}

func (r *UserRepository) UpdateBalance(_ context.Context, userID string, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	item.Balance = balance
	r.items[userID] = item
	return nil
}

func (r *UserRepository) ResetAllBalances(_ context.Context, balance decimal.Decimal) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		item.Balance = balance
		r.items[id] = item
	}
	return int64(len(r.items)), nil
}

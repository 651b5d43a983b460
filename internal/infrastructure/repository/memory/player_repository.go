package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/shopspring/decimal"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	order []string
	index map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{index: make(map[string]player.Player, len(players))}
	for _, p := range players {
		if _, ok := r.index[p.ID]; !ok {
			r.order = append(r.order, p.ID)
		}
		r.index[p.ID] = p
	}
	sort.Strings(r.order)
	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.index[id])
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[item.ID]; ok {
		return fmt.Errorf("player %s already exists", item.ID)
	}
	r.index[item.ID] = item
	r.order = append(r.order, item.ID)
	sort.Strings(r.order)
	return nil
}

// Delete drops the player from the catalog. The memory store keeps no
// foreign keys, so references are not checked.
func (r *PlayerRepository) Delete(_ context.Context, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[playerID]; !ok {
		return false, nil
	}
	delete(r.index, playerID)
	r.order = slices.DeleteFunc(r.order, func(id string) bool { return id == playerID })
	return true, nil
}

func (r *PlayerRepository) UpdatePrice(_ context.Context, playerID string, price decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.index[playerID]
	if !ok {
		return fmt.Errorf("player %s not found", playerID)
	}
	p.Price = price
	r.index[playerID] = p
	return nil
}

func (r *PlayerRepository) ResetPrices(_ context.Context, price decimal.Decimal) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.index {
		p.Price = price
		r.index[id] = p
	}
	return int64(len(r.index)), nil
}

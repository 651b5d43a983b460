package player

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrReferenced is returned by Delete when lineups, statistics or price
// history still point at the player.
var ErrReferenced = errors.New("player is referenced by league records")

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	Create(ctx context.Context, item Player) error
	Delete(ctx context.Context, playerID string) (bool, error)
	UpdatePrice(ctx context.Context, playerID string, price decimal.Decimal) error
	ResetPrices(ctx context.Context, price decimal.Decimal) (int64, error)
}

package playerstats

import (
	"context"
	"errors"
)

var ErrDuplicateStatistic = errors.New("statistic already recorded for player in round")

// Repository stores scout sheets. Statistics are insert-only: Insert returns
// ErrDuplicateStatistic when the (player, round) pair already exists.
type Repository interface {
	Insert(ctx context.Context, stat Statistic) error
	ListByRound(ctx context.Context, roundID string) ([]Statistic, error)
	ListPerformancesByRound(ctx context.Context, roundID string) ([]Performance, error)
}

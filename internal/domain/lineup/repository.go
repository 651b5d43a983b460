package lineup

import "context"

// Repository exposes lineup persistence operations.
type Repository interface {
	GetByUserAndRound(ctx context.Context, userID, roundID string) (Lineup, bool, error)
	ListByRound(ctx context.Context, roundID string) ([]Lineup, error)
	// Upsert stores the lineup keyed by (user, round) and replaces all of its slots.
	Upsert(ctx context.Context, lineup Lineup) error
}

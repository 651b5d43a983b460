package pricehistory

import "context"

// Repository persists price history entries.
type Repository interface {
	// Upsert writes the entry, overwriting any previous row for the same (player, round).
	Upsert(ctx context.Context, entry Entry) error
	ListByRound(ctx context.Context, roundID string) ([]Entry, error)
	// ListMovers returns entries with a positive delta ordered by delta desc for
	// DirectionUp, or a negative delta ordered by delta asc for DirectionDown.
	ListMovers(ctx context.Context, roundID string, direction Direction, limit int) ([]Entry, error)
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]Entry, error)
}

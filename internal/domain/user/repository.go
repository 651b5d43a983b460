package user

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository exposes team-owner persistence operations.
type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	// ListRanking orders owners by total points, highest first, ties by team name.
	ListRanking(ctx context.Context, limit int) ([]User, error)
	// Create inserts the user when absent and leaves an existing row untouched.
	Create(ctx context.Context, u User) error
	UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) error
	ResetAllBalances(ctx context.Context, balance decimal.Decimal) (int64, error)
}

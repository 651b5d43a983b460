package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type lineupTableModel struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	RoundID     string          `db:"round_id"`
	TotalPoints decimal.Decimal `db:"total_points"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type lineupPlayerTableModel struct {
	LineupID  string          `db:"lineup_id"`
	PlayerID  string          `db:"player_id"`
	Role      string          `db:"role"`
	IsStarter bool            `db:"is_starter"`
	Points    decimal.Decimal `db:"points"`
}

package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type priceHistoryTableModel struct {
	PlayerID     string          `db:"player_id"`
	RoundID      string          `db:"round_id"`
	OldPrice     decimal.Decimal `db:"old_price"`
	NewPrice     decimal.Decimal `db:"new_price"`
	Delta        decimal.Decimal `db:"delta"`
	PointsScored decimal.Decimal `db:"points_scored"`
	Reason       string          `db:"reason"`
	CreatedAt    time.Time       `db:"created_at"`
}

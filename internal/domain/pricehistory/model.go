package pricehistory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the audit row of one player's price movement in one round.
// (PlayerID, RoundID) is the natural key.
type Entry struct {
	PlayerID     string
	RoundID      string
	OldPrice     decimal.Decimal
	NewPrice     decimal.Decimal
	Delta        decimal.Decimal
	PointsScored decimal.Decimal
	Reason       string
	CreatedAt    time.Time
}

// Direction selects gainers or losers when ranking movements.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

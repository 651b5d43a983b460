package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type playerTableModel struct {
	ID        string          `db:"id"`
	TeamID    string          `db:"team_id"`
	Name      string          `db:"name"`
	Position  string          `db:"position"`
	Price     decimal.Decimal `db:"price"`
	PhotoURL  string          `db:"photo_url"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

type playerInsertModel struct {
	ID       string          `db:"id"`
	TeamID   string          `db:"team_id"`
	Name     string          `db:"name"`
	Position string          `db:"position"`
	Price    decimal.Decimal `db:"price"`
	PhotoURL string          `db:"photo_url"`
}

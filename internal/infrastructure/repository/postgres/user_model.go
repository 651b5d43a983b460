package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type userTableModel struct {
	ID          string          `db:"id"`
	TeamName    string          `db:"team_name"`
	Balance     decimal.Decimal `db:"balance"`
	TotalPoints decimal.Decimal `db:"total_points"`
	IsAdmin     bool            `db:"is_admin"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type userInsertModel struct {
	ID          string          `db:"id"`
	TeamName    string          `db:"team_name"`
	Balance     decimal.Decimal `db:"balance"`
	TotalPoints decimal.Decimal `db:"total_points"`
	IsAdmin     bool            `db:"is_admin"`
}

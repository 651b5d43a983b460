package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type playerStatsTableModel struct {
	ID            string          `db:"id"`
	PlayerID      string          `db:"player_id"`
	RoundID       string          `db:"round_id"`
	Goals         int             `db:"goals"`
	Assists       int             `db:"assists"`
	ShotsOnTarget int             `db:"shots_on_target"`
	Saves         int             `db:"saves"`
	CleanSheet    bool            `db:"clean_sheet"`
	OwnGoals      int             `db:"own_goals"`
	YellowCards   int             `db:"yellow_cards"`
	RedCards      int             `db:"red_cards"`
	Fouls         int             `db:"fouls"`
	Points        decimal.Decimal `db:"points"`
	CreatedAt     time.Time       `db:"created_at"`
}

// performanceRow is a statistic joined with its player's identity and price.
type performanceRow struct {
	playerStatsTableModel
	PlayerTeamID   string          `db:"player_team_id"`
	PlayerName     string          `db:"player_name"`
	PlayerPosition string          `db:"player_position"`
	PlayerPrice    decimal.Decimal `db:"player_price"`
	PlayerPhotoURL string          `db:"player_photo_url"`
}

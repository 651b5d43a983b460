package postgres

import (
	"context"
	"fmt"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/playerstats"
	qb "github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

var playerStatsSelectColumns = []string{
	"s.id",
	"s.player_id",
	"s.round_id",
	"s.goals",
	"s.assists",
	"s.shots_on_target",
	"s.saves",
	"s.clean_sheet",
	"s.own_goals",
	"s.yellow_cards",
	"s.red_cards",
	"s.fouls",
	"s.points",
	"s.created_at",
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

// Insert stores a statistic. A second row for the same (player, round)
// returns playerstats.ErrDuplicateStatistic.
func (r *PlayerStatsRepository) Insert(ctx context.Context, stat playerstats.Statistic) error {
	query, args, err := qb.InsertModel("player_stats", playerStatsTableModel{
		ID:            stat.ID,
		PlayerID:      stat.PlayerID,
		RoundID:       stat.RoundID,
		Goals:         stat.Scout.Goals,
		Assists:       stat.Scout.Assists,
		ShotsOnTarget: stat.Scout.ShotsOnTarget,
		Saves:         stat.Scout.Saves,
		CleanSheet:    stat.Scout.CleanSheet,
		OwnGoals:      stat.Scout.OwnGoals,
		YellowCards:   stat.Scout.YellowCards,
		RedCards:      stat.Scout.RedCards,
		Fouls:         stat.Scout.Fouls,
		Points:        stat.Points,
		CreatedAt:     stat.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert player stats query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		switch {
		case isUniqueViolation(err):
			return playerstats.ErrDuplicateStatistic
		case isForeignKeyViolation(err):
			return fmt.Errorf("insert player stats: player %s or round %s does not exist: %w", stat.PlayerID, stat.RoundID, err)
		}
		return fmt.Errorf("insert player stats: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) ListByRound(ctx context.Context, roundID string) ([]playerstats.Statistic, error) {
	query, args, err := qb.Select(playerStatsSelectColumns...).From("player_stats s").
		Where(qb.Eq("s.round_id", roundID)).
		OrderBy("s.player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player stats by round query: %w", err)
	}

	var rows []playerStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player stats by round: %w", err)
	}

	out := make([]playerstats.Statistic, 0, len(rows))
	for _, row := range rows {
		out = append(out, statisticFromRow(row))
	}
	return out, nil
}

// ListPerformancesByRound joins each statistic of the round with the player it
// belongs to. Statistics whose player no longer exists are left out.
func (r *PlayerStatsRepository) ListPerformancesByRound(ctx context.Context, roundID string) ([]playerstats.Performance, error) {
	columns := append(append([]string(nil), playerStatsSelectColumns...),
		"p.team_id AS player_team_id",
		"p.name AS player_name",
		"p.position AS player_position",
		"p.price AS player_price",
		"p.photo_url AS player_photo_url",
	)

	query, args, err := qb.Select(columns...).From("player_stats s").
		Join("JOIN players p ON p.id = s.player_id").
		Where(qb.Eq("s.round_id", roundID)).
		OrderBy("s.player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list round performances query: %w", err)
	}

	var rows []performanceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list round performances: %w", err)
	}

	out := make([]playerstats.Performance, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.Performance{
			Statistic: statisticFromRow(row.playerStatsTableModel),
			Player: player.Player{
				ID:       row.PlayerID,
				TeamID:   row.PlayerTeamID,
				Name:     row.PlayerName,
				Position: player.Position(row.PlayerPosition),
				Price:    row.PlayerPrice,
				PhotoURL: row.PlayerPhotoURL,
			},
		})
	}
	return out, nil
}

func statisticFromRow(row playerStatsTableModel) playerstats.Statistic {
	return playerstats.Statistic{
		ID:       row.ID,
		PlayerID: row.PlayerID,
		RoundID:  row.RoundID,
		Scout: playerstats.Scout{
			Goals:         row.Goals,
			Assists:       row.Assists,
			ShotsOnTarget: row.ShotsOnTarget,
			Saves:         row.Saves,
			CleanSheet:    row.CleanSheet,
			OwnGoals:      row.OwnGoals,
			YellowCards:   row.YellowCards,
			RedCards:      row.RedCards,
			Fouls:         row.Fouls,
		},
		Points:    row.Points,
		CreatedAt: row.CreatedAt,
	}
}

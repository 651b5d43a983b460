package postgres

import (
	"context"
	"fmt"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/lineup"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	qb "github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByUserAndRound(ctx context.Context, userID, roundID string) (lineup.Lineup, bool, error) {
	query, args, err := qb.Select("*").From("lineups").
		Where(qb.Eq("user_id", userID), qb.Eq("round_id", roundID)).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}

	items, err := r.attachSlots(ctx, []lineupTableModel{row})
	if err != nil {
		return lineup.Lineup{}, false, err
	}
	return items[0], true, nil
}

func (r *LineupRepository) ListByRound(ctx context.Context, roundID string) ([]lineup.Lineup, error) {
	query, args, err := qb.Select("*").From("lineups").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups by round query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups by round: %w", err)
	}
	if len(rows) == 0 {
		return []lineup.Lineup{}, nil
	}

	return r.attachSlots(ctx, rows)
}

// Upsert writes the lineup header and replaces all of its slots in one transaction.
func (r *LineupRepository) Upsert(ctx context.Context, item lineup.Lineup) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin lineup tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("lineups", lineupTableModel{
		ID:          item.ID,
		UserID:      item.UserID,
		RoundID:     item.RoundID,
		TotalPoints: item.TotalPoints,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}, `ON CONFLICT (user_id, round_id)
DO UPDATE SET
    total_points = EXCLUDED.total_points,
    updated_at = EXCLUDED.updated_at
RETURNING id`)
	if err != nil {
		return fmt.Errorf("build lineup upsert query: %w", err)
	}

	var lineupID string
	if err := tx.GetContext(ctx, &lineupID, query, args...); err != nil {
		return fmt.Errorf("upsert lineup: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM lineup_players WHERE lineup_id = $1`, lineupID); err != nil {
		return fmt.Errorf("clear lineup players: %w", err)
	}

	if len(item.Slots) > 0 {
		insert := qb.InsertInto("lineup_players").Columns("lineup_id", "player_id", "role", "is_starter", "points")
		for _, slot := range item.Slots {
			insert = insert.Values(lineupID, slot.PlayerID, string(slot.Role), slot.IsStarter, slot.Points)
		}
		query, args, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert lineup players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert lineup players: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lineup tx: %w", err)
	}
	return nil
}

func (r *LineupRepository) attachSlots(ctx context.Context, rows []lineupTableModel) ([]lineup.Lineup, error) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	query, args, err := qb.Select("*").From("lineup_players").
		Where(qb.In("lineup_id", stringSliceToAny(ids))).
		OrderBy("lineup_id", "role", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineup players query: %w", err)
	}

	var slotRows []lineupPlayerTableModel
	if err := r.db.SelectContext(ctx, &slotRows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineup players: %w", err)
	}

	slots := make(map[string][]lineup.Slot, len(rows))
	for _, s := range slotRows {
		slots[s.LineupID] = append(slots[s.LineupID], lineup.Slot{
			PlayerID:  s.PlayerID,
			Role:      player.Position(s.Role),
			IsStarter: s.IsStarter,
			Points:    s.Points,
		})
	}

	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineup.Lineup{
			ID:          row.ID,
			UserID:      row.UserID,
			RoundID:     row.RoundID,
			Slots:       slots[row.ID],
			TotalPoints: row.TotalPoints,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return out, nil
}

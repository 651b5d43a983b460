package postgres

import (
	"context"
	"fmt"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/pricehistory"
	qb "github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type PriceHistoryRepository struct {
	db *sqlx.DB
}

var priceHistorySelectColumns = []string{
	"player_id",
	"round_id",
	"old_price",
	"new_price",
	"delta",
	"points_scored",
	"reason",
	"created_at",
}

func NewPriceHistoryRepository(db *sqlx.DB) *PriceHistoryRepository {
	return &PriceHistoryRepository{db: db}
}

// Upsert keeps created_at of an existing row; everything else is replaced.
func (r *PriceHistoryRepository) Upsert(ctx context.Context, entry pricehistory.Entry) error {
	query, args, err := qb.InsertModel("player_price_history", priceHistoryTableModel{
		PlayerID:     entry.PlayerID,
		RoundID:      entry.RoundID,
		OldPrice:     entry.OldPrice,
		NewPrice:     entry.NewPrice,
		Delta:        entry.Delta,
		PointsScored: entry.PointsScored,
		Reason:       entry.Reason,
		CreatedAt:    entry.CreatedAt,
	}, `ON CONFLICT (player_id, round_id)
DO UPDATE SET
    old_price = EXCLUDED.old_price,
    new_price = EXCLUDED.new_price,
    delta = EXCLUDED.delta,
    points_scored = EXCLUDED.points_scored,
    reason = EXCLUDED.reason,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert price history query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert price history: %w", err)
	}
	return nil
}

func (r *PriceHistoryRepository) ListByRound(ctx context.Context, roundID string) ([]pricehistory.Entry, error) {
	return r.selectEntries(ctx, "list round price history", qb.Select(priceHistorySelectColumns...).
		From("player_price_history").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("player_id"))
}

func (r *PriceHistoryRepository) ListMovers(ctx context.Context, roundID string, direction pricehistory.Direction, limit int) ([]pricehistory.Entry, error) {
	builder := qb.Select(priceHistorySelectColumns...).From("player_price_history")
	switch direction {
	case pricehistory.DirectionUp:
		builder = builder.Where(qb.Eq("round_id", roundID), qb.Gt("delta", 0)).OrderBy("delta DESC", "player_id")
	case pricehistory.DirectionDown:
		builder = builder.Where(qb.Eq("round_id", roundID), qb.Lt("delta", 0)).OrderBy("delta ASC", "player_id")
	default:
		return nil, fmt.Errorf("unknown price direction %q", direction)
	}

	return r.selectEntries(ctx, "list price movers", builder.Limit(limit))
}

func (r *PriceHistoryRepository) ListByPlayer(ctx context.Context, playerID string, limit int) ([]pricehistory.Entry, error) {
	return r.selectEntries(ctx, "list player price history", qb.Select(priceHistorySelectColumns...).
		From("player_price_history").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("created_at DESC", "round_id DESC").
		Limit(limit))
}

func (r *PriceHistoryRepository) selectEntries(ctx context.Context, op string, builder *qb.SelectBuilder) ([]pricehistory.Entry, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []priceHistoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]pricehistory.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, pricehistory.Entry{
			PlayerID:     row.PlayerID,
			RoundID:      row.RoundID,
			OldPrice:     row.OldPrice,
			NewPrice:     row.NewPrice,
			Delta:        row.Delta,
			PointsScored: row.PointsScored,
			Reason:       row.Reason,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

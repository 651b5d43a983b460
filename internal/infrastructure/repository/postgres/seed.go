package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/infrastructure/repository/memory"
	"github.com/jmoiron/sqlx"
)

// BootstrapSeed loads the demo clubs, players and first round into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(label, query string, arg map[string]any) error {
		sqlQuery, args, err := sqlx.Named(query, arg)
		if err != nil {
			return fmt.Errorf("bind seed %s query: %w", label, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed %s: %w", label, err)
		}
		return nil
	}

	for _, t := range memory.SeedTeams() {
		err := exec("team "+t.ID, `
INSERT INTO teams (id, name, logo_url)
VALUES (:id, :name, :logo_url)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":       t.ID,
			"name":     t.Name,
			"logo_url": t.LogoURL,
		})
		if err != nil {
			return err
		}
	}

	for _, p := range memory.SeedPlayers() {
		err := exec("player "+p.ID, `
INSERT INTO players (id, team_id, name, position, price, photo_url)
VALUES (:id, :team_id, :name, :position, :price, :photo_url)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":        p.ID,
			"team_id":   p.TeamID,
			"name":      p.Name,
			"position":  string(p.Position),
			"price":     p.Price,
			"photo_url": p.PhotoURL,
		})
		if err != nil {
			return err
		}
	}

	for _, rd := range memory.SeedRounds(now) {
		err := exec("round "+rd.ID, `
INSERT INTO rounds (id, name, status, created_at, updated_at)
VALUES (:id, :name, :status, :created_at, :updated_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":         rd.ID,
			"name":       rd.Name,
			"status":     string(rd.Status),
			"created_at": rd.CreatedAt.UTC(),
			"updated_at": rd.UpdatedAt.UTC(),
		})
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	qb "github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}

	return userFromRow(row), true, nil
}

func (r *UserRepository) ListRanking(ctx context.Context, limit int) ([]user.User, error) {
	query, args, err := qb.Select("*").From("users").
		OrderBy("total_points DESC", "team_name", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select ranking query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select ranking: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}
	return out, nil
}

// Create inserts the user unless a row with the same id already exists.
func (r *UserRepository) Create(ctx context.Context, item user.User) error {
	query, args, err := qb.InsertModel("users", userInsertModel{
		ID:          item.ID,
		TeamName:    item.TeamName,
		Balance:     item.Balance,
		TotalPoints: item.TotalPoints,
		IsAdmin:     item.IsAdmin,
	}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	query, args, err := qb.Update("users").
		Set("balance", balance).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user balance query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user balance: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update user balance: user %s not found", userID)
	}
	return nil
}

func (r *UserRepository) ResetAllBalances(ctx context.Context, balance decimal.Decimal) (int64, error) {
	query, args, err := qb.Update("users").
		Set("balance", balance).
		SetExpr("updated_at", "NOW()").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build reset balances query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset balances: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count reset balances: %w", err)
	}
	return affected, nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:          row.ID,
		TeamName:    row.TeamName,
		Balance:     row.Balance,
		TotalPoints: row.TotalPoints,
		IsAdmin:     row.IsAdmin,
	}
}

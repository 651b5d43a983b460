package usecase

import (
	"context"
	"fmt"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	"github.com/shopspring/decimal"
)

const (
	defaultRankingLimit = 20
	maxRankingLimit     = 100
)

type RankingEntry struct {
	Position    int             `json:"position"`
	UserID      string          `json:"user_id"`
	TeamName    string          `json:"team_name"`
	TotalPoints decimal.Decimal `json:"total_points"`
	Balance     decimal.Decimal `json:"balance"`
}

// DashboardService serves the public league table.
type DashboardService struct {
	userRepo user.Repository
}

func NewDashboardService(userRepo user.Repository) *DashboardService {
	return &DashboardService{userRepo: userRepo}
}

// Ranking lists managers by accumulated points. Ties share the order of the
// repository (team name) but keep distinct positions.
func (s *DashboardService) Ranking(ctx context.Context, limit int) ([]RankingEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Ranking")
	defer span.End()

	users, err := s.userRepo.ListRanking(ctx, clampLimit(limit, defaultRankingLimit, maxRankingLimit))
	if err != nil {
		markSpanError(span, err)
		return nil, fmt.Errorf("list ranking: %w", err)
	}

	out := make([]RankingEntry, 0, len(users))
	for i, u := range users {
		out = append(out, RankingEntry{
			Position:    i + 1,
			UserID:      u.ID,
			TeamName:    u.TeamName,
			TotalPoints: u.TotalPoints,
			Balance:     u.Balance,
		})
	}
	return out, nil
}

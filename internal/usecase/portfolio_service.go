package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/lineup"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/shopspring/decimal"
)

type ReconcileResult struct {
	RoundID      string `json:"round_id"`
	Lineups      int    `json:"lineups"`
	UsersUpdated int    `json:"users_updated"`
	Failed       int    `json:"failed"`
}

// PortfolioService rewrites each owner's balance to the current market value
// of the roster they fielded in a round.
type PortfolioService struct {
	roundRepo  round.Repository
	lineupRepo lineup.Repository
	playerRepo player.Repository
	userRepo   user.Repository
	maxWorkers int
	logger     *logging.Logger
}

func NewPortfolioService(
	roundRepo round.Repository,
	lineupRepo lineup.Repository,
	playerRepo player.Repository,
	userRepo user.Repository,
	maxWorkers int,
	logger *logging.Logger,
) *PortfolioService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PortfolioService{
		roundRepo:  roundRepo,
		lineupRepo: lineupRepo,
		playerRepo: playerRepo,
		userRepo:   userRepo,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// Reconcile overwrites the balance of every owner with a lineup in an active
// round with the sum of its players' current prices. A lineup that cannot be
// priced or written is logged and skipped. Finished rounds are refused since
// their balances were already reset for the next market.
func (s *PortfolioService) Reconcile(ctx context.Context, roundID string) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortfolioService.Reconcile", roundAttr(roundID))
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return ReconcileResult{}, fmt.Errorf("%w: round_id is required", ErrInvalidInput)
	}

	item, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		markSpanError(span, err)
		return ReconcileResult{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return ReconcileResult{}, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	if item.Status != round.StatusActive {
		return ReconcileResult{}, fmt.Errorf("%w: round %s is %s, only active rounds are reconciled", ErrInvalidTransition, roundID, item.Status)
	}

	lineups, err := s.lineupRepo.ListByRound(ctx, roundID)
	if err != nil {
		markSpanError(span, err)
		return ReconcileResult{}, fmt.Errorf("list round lineups: %w", err)
	}

	result := ReconcileResult{RoundID: roundID, Lineups: len(lineups)}

	var updated atomic.Int32
	var failed atomic.Int32
	if err := forEachBounded(s.maxWorkers, len(lineups), func(i int) {
		if err := s.reconcileLineup(ctx, lineups[i]); err != nil {
			failed.Add(1)
			s.logger.WarnContext(ctx, "skip lineup reconciliation",
				"round_id", roundID,
				"lineup_id", lineups[i].ID,
				"user_id", lineups[i].UserID,
				"error", err,
			)
			return
		}
		updated.Add(1)
	}); err != nil {
		markSpanError(span, err)
		return ReconcileResult{}, err
	}

	result.UsersUpdated = int(updated.Load())
	result.Failed = int(failed.Load())

	s.logger.InfoContext(ctx, "round portfolio reconciliation completed",
		"round_id", roundID,
		"lineups", result.Lineups,
		"users_updated", result.UsersUpdated,
		"failed", result.Failed,
	)

	return result, nil
}

func (s *PortfolioService) reconcileLineup(ctx context.Context, item lineup.Lineup) error {
	ids := item.PlayerIDs()
	if len(ids) == 0 {
		return fmt.Errorf("lineup has no players")
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("get lineup players: %w", err)
	}

	value, err := rosterValue(ids, players)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateBalance(ctx, item.UserID, value); err != nil {
		return fmt.Errorf("update user balance: %w", err)
	}
	return nil
}

// rosterValue sums the current price of every referenced player. A missing
// player makes the roster unpriceable.
func rosterValue(ids []string, players []player.Player) (decimal.Decimal, error) {
	priceByID := make(map[string]decimal.Decimal, len(players))
	for _, p := range players {
		priceByID[p.ID] = p.Price
	}

	total := decimal.Zero
	for _, id := range ids {
		price, ok := priceByID[id]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: player=%s", ErrNotFound, id)
		}
		total = total.Add(price)
	}
	return total.Round(2), nil
}

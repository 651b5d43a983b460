package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/playerstats"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/pricehistory"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/valuation"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/shopspring/decimal"
)

type PriceChange struct {
	PlayerID   string          `json:"player_id"`
	PlayerName string          `json:"player_name"`
	OldPrice   decimal.Decimal `json:"old_price"`
	NewPrice   decimal.Decimal `json:"new_price"`
	Delta      decimal.Decimal `json:"delta"`
	Points     decimal.Decimal `json:"points"`
	Reason     string          `json:"reason"`
}

type RevaluationResult struct {
	RoundID     string        `json:"round_id"`
	Processed   int           `json:"processed"`
	Valorized   int           `json:"valorized"`
	Devalorized int           `json:"devalorized"`
	Unchanged   int           `json:"unchanged"`
	Failed      int           `json:"failed"`
	Changes     []PriceChange `json:"changes"`
}

type revaluationStatus int

const (
	revaluationUnchanged revaluationStatus = iota
	revaluationValorized
	revaluationDevalorized
	revaluationFailed
)

type revaluationOutcome struct {
	status revaluationStatus
	change PriceChange
}

// RevaluationService turns a round's scout sheets into player price movements.
type RevaluationService struct {
	roundRepo   round.Repository
	statsRepo   playerstats.Repository
	historyRepo pricehistory.Repository
	playerRepo  player.Repository
	policy      valuation.Policy
	maxWorkers  int
	logger      *logging.Logger
	now         func() time.Time
}

func NewRevaluationService(
	roundRepo round.Repository,
	statsRepo playerstats.Repository,
	historyRepo pricehistory.Repository,
	playerRepo player.Repository,
	maxWorkers int,
	logger *logging.Logger,
) *RevaluationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RevaluationService{
		roundRepo:   roundRepo,
		statsRepo:   statsRepo,
		historyRepo: historyRepo,
		playerRepo:  playerRepo,
		policy:      valuation.DefaultPolicy(),
		maxWorkers:  maxWorkers,
		logger:      logger,
		now:         time.Now,
	}
}

// Process revalues every player with a statistic in an active round.
// Individual write failures are logged and counted, never returned. Re-running
// a round prices a player from the old price in its history row while the
// player still carries that row's new price, so repeated runs converge to the
// same prices and rows.
func (s *RevaluationService) Process(ctx context.Context, roundID string) (RevaluationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RevaluationService.Process", roundAttr(roundID))
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return RevaluationResult{}, fmt.Errorf("%w: round_id is required", ErrInvalidInput)
	}

	item, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return RevaluationResult{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return RevaluationResult{}, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	if item.Status != round.StatusActive {
		return RevaluationResult{}, fmt.Errorf("%w: round %s is %s, only active rounds are revalued", ErrInvalidTransition, roundID, item.Status)
	}

	performances, err := s.statsRepo.ListPerformancesByRound(ctx, roundID)
	if err != nil {
		markSpanError(span, err)
		return RevaluationResult{}, fmt.Errorf("list round performances: %w", err)
	}

	result := RevaluationResult{RoundID: roundID, Changes: make([]PriceChange, 0, len(performances))}
	if len(performances) == 0 {
		s.logger.WarnContext(ctx, "no statistics recorded for round, revaluation skipped", "round_id", roundID)
		return result, fmt.Errorf("%w: round=%s", ErrStatisticsUnavailable, roundID)
	}

	previous, err := s.previousPrices(ctx, roundID)
	if err != nil {
		markSpanError(span, err)
		return RevaluationResult{}, err
	}

	outcomes := make([]revaluationOutcome, len(performances))
	if err := forEachBounded(s.maxWorkers, len(performances), func(i int) {
		outcomes[i] = s.revalue(ctx, roundID, performances[i], previous)
	}); err != nil {
		markSpanError(span, err)
		return RevaluationResult{}, err
	}

	result.Processed = len(performances)
	for _, outcome := range outcomes {
		switch outcome.status {
		case revaluationValorized:
			result.Valorized++
			result.Changes = append(result.Changes, outcome.change)
		case revaluationDevalorized:
			result.Devalorized++
			result.Changes = append(result.Changes, outcome.change)
		case revaluationFailed:
			result.Failed++
		default:
			result.Unchanged++
		}
	}

	s.logger.InfoContext(ctx, "round revaluation completed",
		"round_id", roundID,
		"processed", result.Processed,
		"valorized", result.Valorized,
		"devalorized", result.Devalorized,
		"unchanged", result.Unchanged,
		"failed", result.Failed,
	)

	return result, nil
}

func (s *RevaluationService) previousPrices(ctx context.Context, roundID string) (map[string]pricehistory.Entry, error) {
	entries, err := s.historyRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list round price history: %w", err)
	}

	out := make(map[string]pricehistory.Entry, len(entries))
	for _, entry := range entries {
		out[entry.PlayerID] = entry
	}
	return out, nil
}

func (s *RevaluationService) revalue(
	ctx context.Context,
	roundID string,
	perf playerstats.Performance,
	previous map[string]pricehistory.Entry,
) revaluationOutcome {
	playerID := perf.Player.ID
	basePrice := perf.Player.Price
	// A price moved since the row was written (season reset, admin edit) is
	// the new base.
	if prev, ok := previous[playerID]; ok && prev.NewPrice.Equal(basePrice) {
		basePrice = prev.OldPrice
	}

	res := s.policy.Evaluate(basePrice, perf.Statistic.Points)
	if !res.Changed() {
		return revaluationOutcome{status: revaluationUnchanged}
	}

	entry := pricehistory.Entry{
		PlayerID:     playerID,
		RoundID:      roundID,
		OldPrice:     res.OldPrice,
		NewPrice:     res.NewPrice,
		Delta:        res.Delta,
		PointsScored: perf.Statistic.Points,
		Reason:       res.Reason,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.historyRepo.Upsert(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "skip player revaluation: write price history failed",
			"round_id", roundID,
			"player_id", playerID,
			"error", err,
		)
		return revaluationOutcome{status: revaluationFailed}
	}

	if err := s.playerRepo.UpdatePrice(ctx, playerID, res.NewPrice); err != nil {
		s.logger.WarnContext(ctx, "skip player revaluation: update player price failed",
			"round_id", roundID,
			"player_id", playerID,
			"new_price", res.NewPrice,
			"error", err,
		)
		return revaluationOutcome{status: revaluationFailed}
	}

	status := revaluationValorized
	if res.Delta.IsNegative() {
		status = revaluationDevalorized
	}

	return revaluationOutcome{
		status: status,
		change: PriceChange{
			PlayerID:   playerID,
			PlayerName: perf.Player.Name,
			OldPrice:   res.OldPrice,
			NewPrice:   res.NewPrice,
			Delta:      res.Delta,
			Points:     perf.Statistic.Points,
			Reason:     res.Reason,
		},
	}
}

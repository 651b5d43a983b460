package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/playerstats"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/id"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
)

type RecordStatisticInput struct {
	RoundID  string
	PlayerID string
	Scout    playerstats.Scout
}

// StatisticsService records the scout sheets that feed points and prices.
type StatisticsService struct {
	roundRepo  round.Repository
	playerRepo player.Repository
	statsRepo  playerstats.Repository
	idGen      id.Generator
	weights    playerstats.Weights
	logger     *logging.Logger
	now        func() time.Time
}

func NewStatisticsService(
	roundRepo round.Repository,
	playerRepo player.Repository,
	statsRepo playerstats.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *StatisticsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StatisticsService{
		roundRepo:  roundRepo,
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
		idGen:      idGen,
		weights:    playerstats.DefaultWeights(),
		logger:     logger,
		now:        time.Now,
	}
}

// Record stores one scout sheet. Sheets are insert-only and a second sheet
// for the same player and round is rejected with ErrConflict.
func (s *StatisticsService) Record(ctx context.Context, input RecordStatisticInput) (playerstats.Statistic, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.Record")
	defer span.End()

	input.RoundID = strings.TrimSpace(input.RoundID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.RoundID == "" || input.PlayerID == "" {
		return playerstats.Statistic{}, fmt.Errorf("%w: round_id and player_id are required", ErrInvalidInput)
	}
	if err := input.Scout.Validate(); err != nil {
		return playerstats.Statistic{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, exists, err := s.roundRepo.GetByID(ctx, input.RoundID)
	if err != nil {
		return playerstats.Statistic{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return playerstats.Statistic{}, fmt.Errorf("%w: round=%s", ErrNotFound, input.RoundID)
	}
	if item.Status == round.StatusPending {
		return playerstats.Statistic{}, fmt.Errorf("%w: round %s has not started", ErrInvalidInput, item.ID)
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID); err != nil {
		return playerstats.Statistic{}, fmt.Errorf("get player: %w", err)
	} else if !exists {
		return playerstats.Statistic{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
	}

	statID, err := s.idGen.NewID()
	if err != nil {
		return playerstats.Statistic{}, fmt.Errorf("generate statistic id: %w", err)
	}

	stat := playerstats.Statistic{
		ID:        statID,
		PlayerID:  input.PlayerID,
		RoundID:   input.RoundID,
		Scout:     input.Scout,
		Points:    playerstats.CalculatePoints(input.Scout, s.weights),
		CreatedAt: s.now().UTC(),
	}

	if err := s.statsRepo.Insert(ctx, stat); err != nil {
		if errors.Is(err, playerstats.ErrDuplicateStatistic) {
			return playerstats.Statistic{}, fmt.Errorf("%w: statistic already recorded for player=%s round=%s", ErrConflict, stat.PlayerID, stat.RoundID)
		}
		return playerstats.Statistic{}, fmt.Errorf("insert statistic: %w", err)
	}

	if item.Status == round.StatusFinished {
		s.logger.WarnContext(ctx, "statistic recorded for a finished round",
			"round_id", stat.RoundID,
			"player_id", stat.PlayerID,
		)
	}

	return stat, nil
}

func (s *StatisticsService) ListByRound(ctx context.Context, roundID string) ([]playerstats.Statistic, error) {
	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return nil, fmt.Errorf("%w: round_id is required", ErrInvalidInput)
	}

	items, err := s.statsRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list round statistics: %w", err)
	}
	return items, nil
}

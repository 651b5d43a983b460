package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/fantasy"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/lineup"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/id"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/shopspring/decimal"
)

type SaveLineupInput struct {
	UserID       string
	TeamName     string
	GoalkeeperID string
	FixoID       string
	AlaIDs       []string
	PivoID       string
}

type LineupView struct {
	Lineup  lineup.Lineup   `json:"lineup"`
	Round   round.Round     `json:"round"`
	Cost    decimal.Decimal `json:"cost"`
	Balance decimal.Decimal `json:"balance"`
}

// LineupService saves rosters while a round's market is open.
type LineupService struct {
	roundRepo  round.Repository
	playerRepo player.Repository
	lineupRepo lineup.Repository
	userRepo   user.Repository
	idGen      id.Generator
	rules      fantasy.Rules
	logger     *logging.Logger
	now        func() time.Time
}

func NewLineupService(
	roundRepo round.Repository,
	playerRepo player.Repository,
	lineupRepo lineup.Repository,
	userRepo user.Repository,
	idGen id.Generator,
	rules fantasy.Rules,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LineupService{
		roundRepo:  roundRepo,
		playerRepo: playerRepo,
		lineupRepo: lineupRepo,
		userRepo:   userRepo,
		idGen:      idGen,
		rules:      rules,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *LineupService) openRound(ctx context.Context) (round.Round, error) {
	item, exists, err := s.roundRepo.GetLatestByStatus(ctx, round.StatusPending)
	if err != nil {
		return round.Round{}, fmt.Errorf("get open round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: no round is accepting lineups", ErrMarketClosed)
	}
	return item, nil
}

// GetCurrent returns the caller's lineup for the round whose market is open.
func (s *LineupService) GetCurrent(ctx context.Context, userID string) (LineupView, bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return LineupView{}, false, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	openRound, err := s.openRound(ctx)
	if err != nil {
		return LineupView{}, false, err
	}

	item, exists, err := s.lineupRepo.GetByUserAndRound(ctx, userID, openRound.ID)
	if err != nil {
		return LineupView{}, false, fmt.Errorf("get lineup by user and round: %w", err)
	}
	if !exists {
		return LineupView{}, false, nil
	}

	cost, err := s.lineupCost(ctx, item)
	if err != nil {
		return LineupView{}, false, err
	}

	owner, _, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return LineupView{}, false, fmt.Errorf("get user: %w", err)
	}

	return LineupView{Lineup: item, Round: openRound, Cost: cost, Balance: owner.Balance}, true, nil
}

// Save validates the formation and budget, charges its cost and then replaces
// the caller's lineup for the open round. A previous lineup for the same round
// is refunded at current prices before the new cost is charged. When the
// lineup write fails the charge is reverted.
func (s *LineupService) Save(ctx context.Context, input SaveLineupInput) (LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Save")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return LineupView{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	slots, err := slotsFromInput(input)
	if err != nil {
		return LineupView{}, err
	}

	openRound, err := s.openRound(ctx)
	if err != nil {
		return LineupView{}, err
	}

	owner, err := s.ensureUser(ctx, input.UserID, input.TeamName)
	if err != nil {
		return LineupView{}, err
	}

	available := owner.Balance
	previous, hasPrevious, err := s.lineupRepo.GetByUserAndRound(ctx, owner.ID, openRound.ID)
	if err != nil {
		return LineupView{}, fmt.Errorf("get lineup by user and round: %w", err)
	}
	if hasPrevious {
		refund, err := s.lineupCost(ctx, previous)
		if err != nil {
			return LineupView{}, err
		}
		available = available.Add(refund)
	}

	picks, err := s.resolvePicks(ctx, slots)
	if err != nil {
		return LineupView{}, err
	}

	cost, err := fantasy.ValidateLineup(picks, s.rules, available)
	if err != nil {
		return LineupView{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	item := lineup.Lineup{
		UserID:      owner.ID,
		RoundID:     openRound.ID,
		Slots:       slots,
		TotalPoints: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if hasPrevious {
		item.ID = previous.ID
		item.CreatedAt = previous.CreatedAt
	} else {
		item.ID, err = s.idGen.NewID()
		if err != nil {
			return LineupView{}, fmt.Errorf("generate lineup id: %w", err)
		}
	}

	balance := available.Sub(cost).Round(2)
	if err := s.userRepo.UpdateBalance(ctx, owner.ID, balance); err != nil {
		return LineupView{}, fmt.Errorf("update user balance: %w", err)
	}

	if err := s.lineupRepo.Upsert(ctx, item); err != nil {
		if restoreErr := s.userRepo.UpdateBalance(ctx, owner.ID, owner.Balance); restoreErr != nil {
			s.logger.ErrorContext(ctx, "balance charged but lineup not saved",
				"user_id", owner.ID,
				"round_id", openRound.ID,
				"charged_balance", balance,
				"previous_balance", owner.Balance,
				"error", restoreErr,
			)
		}
		return LineupView{}, fmt.Errorf("upsert lineup: %w", err)
	}

	return LineupView{Lineup: item, Round: openRound, Cost: cost, Balance: balance}, nil
}

func (s *LineupService) ensureUser(ctx context.Context, userID, teamName string) (user.User, error) {
	owner, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if exists {
		return owner, nil
	}

	owner = user.User{
		ID:          userID,
		TeamName:    strings.TrimSpace(teamName),
		Balance:     s.rules.StartingBalance,
		TotalPoints: decimal.Zero,
	}
	if err := owner.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.userRepo.Create(ctx, owner); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "team owner registered", "user_id", owner.ID, "team_name", owner.TeamName)
	return owner, nil
}

func (s *LineupService) lineupCost(ctx context.Context, item lineup.Lineup) (decimal.Decimal, error) {
	players, err := s.playerRepo.GetByIDs(ctx, item.PlayerIDs())
	if err != nil {
		return decimal.Zero, fmt.Errorf("get lineup players: %w", err)
	}

	cost, err := rosterValue(item.PlayerIDs(), players)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price lineup %s: %w", item.ID, err)
	}
	return cost, nil
}

func (s *LineupService) resolvePicks(ctx context.Context, slots []lineup.Slot) ([]fantasy.Pick, error) {
	ids := make([]string, 0, len(slots))
	for _, slot := range slots {
		ids = append(ids, slot.PlayerID)
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	picks := make([]fantasy.Pick, 0, len(slots))
	for _, slot := range slots {
		p, ok := byID[slot.PlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: player=%s", ErrNotFound, slot.PlayerID)
		}
		if p.Position != slot.Role {
			return nil, fmt.Errorf("%w: %w: player %s plays %s, not %s", ErrInvalidInput, fantasy.ErrFormationMismatch, p.ID, p.Position, slot.Role)
		}
		picks = append(picks, fantasy.Pick{PlayerID: p.ID, Position: p.Position, Price: p.Price})
	}

	return picks, nil
}

func slotsFromInput(input SaveLineupInput) ([]lineup.Slot, error) {
	slots := make([]lineup.Slot, 0, 5)
	add := func(playerID string, role player.Position) {
		slots = append(slots, lineup.Slot{
			PlayerID:  strings.TrimSpace(playerID),
			Role:      role,
			IsStarter: true,
			Points:    decimal.Zero,
		})
	}

	add(input.GoalkeeperID, player.PositionGoalkeeper)
	add(input.FixoID, player.PositionFixo)
	for _, alaID := range input.AlaIDs {
		add(alaID, player.PositionAla)
	}
	add(input.PivoID, player.PositionPivo)

	for _, slot := range slots {
		if slot.PlayerID == "" {
			return nil, fmt.Errorf("%w: every %s slot needs a player", ErrInvalidInput, slot.Role)
		}
	}
	return slots, nil
}

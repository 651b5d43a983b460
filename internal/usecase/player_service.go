package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/team"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/valuation"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/id"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/shopspring/decimal"
)

type PlayerListing struct {
	Player   player.Player
	TeamName string
}

type CreatePlayerInput struct {
	TeamID   string
	Name     string
	Position string
	Price    decimal.Decimal
	PhotoURL string
}

// PlayerService serves the market catalog, admin roster edits and the season
// price reset.
type PlayerService struct {
	playerRepo   player.Repository
	teamRepo     team.Repository
	idGen        id.Generator
	policy       valuation.Policy
	defaultReset decimal.Decimal
	logger       *logging.Logger
}

func NewPlayerService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	idGen id.Generator,
	defaultReset decimal.Decimal,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
		idGen:        idGen,
		policy:       valuation.DefaultPolicy(),
		defaultReset: defaultReset,
		logger:       logger,
	}
}

// List returns every player with its club name, most expensive first.
func (s *PlayerService) List(ctx context.Context) ([]PlayerListing, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	out := make([]PlayerListing, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerListing{Player: p, TeamName: teamNames[p.TeamID]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Player.Price.Equal(out[j].Player.Price) {
			return out[i].Player.Price.GreaterThan(out[j].Player.Price)
		}
		return out[i].Player.Name < out[j].Player.Name
	})

	return out, nil
}

// Create adds a player to a club's roster. The listing price is clamped to the
// price band; after this only revaluation and the season reset change it.
func (s *PlayerService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	teamID := strings.TrimSpace(input.TeamID)
	if teamID == "" {
		return player.Player{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if !input.Price.IsPositive() {
		return player.Player{}, fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}

	if _, exists, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		markSpanError(span, err)
		return player.Player{}, fmt.Errorf("get team: %w", err)
	} else if !exists {
		return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	item := player.Player{
		ID:       playerID,
		TeamID:   teamID,
		Name:     strings.TrimSpace(input.Name),
		Position: player.Position(strings.ToUpper(strings.TrimSpace(input.Position))),
		Price:    s.policy.ClampPrice(input.Price).Round(2),
		PhotoURL: strings.TrimSpace(input.PhotoURL),
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		markSpanError(span, err)
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created", "player_id", item.ID, "team_id", item.TeamID, "price", item.Price)
	return item, nil
}

// Delete removes a player that no lineup, statistic or price history row
// refers to.
func (s *PlayerService) Delete(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	deleted, err := s.playerRepo.Delete(ctx, playerID)
	if err != nil {
		if errors.Is(err, player.ErrReferenced) {
			return fmt.Errorf("%w: player %s has league history", ErrConflict, playerID)
		}
		markSpanError(span, err)
		return fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", playerID)
	return nil
}

// ResetPrices sets every player to the same price for a new season. A nil
// price uses the configured default; the value is clamped to the price band.
func (s *PlayerService) ResetPrices(ctx context.Context, price *decimal.Decimal) (int64, decimal.Decimal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ResetPrices")
	defer span.End()

	target := s.defaultReset
	if price != nil {
		target = *price
	}
	if !target.IsPositive() {
		return 0, decimal.Zero, fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}
	target = s.policy.ClampPrice(target).Round(2)

	count, err := s.playerRepo.ResetPrices(ctx, target)
	if err != nil {
		markSpanError(span, err)
		return 0, decimal.Zero, fmt.Errorf("reset player prices: %w", err)
	}

	s.logger.InfoContext(ctx, "player prices reset", "players", count, "price", target)
	return count, target, nil
}

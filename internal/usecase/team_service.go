package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/team"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/id"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
)

type CreateTeamInput struct {
	Name    string
	LogoURL string
}

// TeamService manages the league's club catalog.
type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	idGen      id.Generator
	logger     *logging.Logger
}

func NewTeamService(teamRepo team.Repository, playerRepo player.Repository, idGen id.Generator, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:      teamID,
		Name:    strings.TrimSpace(input.Name),
		LogoURL: strings.TrimSpace(input.LogoURL),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		markSpanError(span, err)
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "name", item.Name)
	return item, nil
}

// Delete removes a club with an empty roster.
func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		markSpanError(span, err)
		return fmt.Errorf("list players: %w", err)
	}
	for _, p := range players {
		if p.TeamID == teamID {
			return fmt.Errorf("%w: team %s still has players", ErrConflict, teamID)
		}
	}

	deleted, err := s.teamRepo.Delete(ctx, teamID)
	if err != nil {
		if errors.Is(err, team.ErrHasPlayers) {
			return fmt.Errorf("%w: team %s still has players", ErrConflict, teamID)
		}
		markSpanError(span, err)
		return fmt.Errorf("delete team: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", teamID)
	return nil
}

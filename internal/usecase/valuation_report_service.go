package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/pricehistory"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/team"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultMoversLimit  = 10
	maxMoversLimit      = 100
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

type Mover struct {
	PlayerID   string          `json:"player_id"`
	PlayerName string          `json:"player_name"`
	Position   player.Position `json:"position"`
	TeamID     string          `json:"team_id"`
	TeamName   string          `json:"team_name"`
	OldPrice   decimal.Decimal `json:"old_price"`
	NewPrice   decimal.Decimal `json:"new_price"`
	Delta      decimal.Decimal `json:"delta"`
	Points     decimal.Decimal `json:"points"`
	Reason     string          `json:"reason"`
}

type MoversReport struct {
	RoundID string  `json:"round_id"`
	Gainers []Mover `json:"gainers"`
	Losers  []Mover `json:"losers"`
}

// ValuationReportService reads price history for display. It never writes.
type ValuationReportService struct {
	roundRepo    round.Repository
	historyRepo  pricehistory.Repository
	playerRepo   player.Repository
	teamRepo     team.Repository
	defaultLimit int
}

func NewValuationReportService(
	roundRepo round.Repository,
	historyRepo pricehistory.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	defaultLimit int,
) *ValuationReportService {
	if defaultLimit <= 0 {
		defaultLimit = defaultMoversLimit
	}

	return &ValuationReportService{
		roundRepo:    roundRepo,
		historyRepo:  historyRepo,
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
		defaultLimit: defaultLimit,
	}
}

// TopMovers returns the round's biggest risers and fallers.
func (s *ValuationReportService) TopMovers(ctx context.Context, roundID string, limit int) (MoversReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValuationReportService.TopMovers", roundAttr(roundID))
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if err := s.ensureRound(ctx, roundID); err != nil {
		return MoversReport{}, err
	}
	limit = clampLimit(limit, s.defaultLimit, maxMoversLimit)

	var gainers, losers []pricehistory.Entry
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.historyRepo.ListMovers(ctx, roundID, pricehistory.DirectionUp, limit)
		if err != nil {
			return fmt.Errorf("list gainers: %w", err)
		}
		gainers = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.historyRepo.ListMovers(ctx, roundID, pricehistory.DirectionDown, limit)
		if err != nil {
			return fmt.Errorf("list losers: %w", err)
		}
		losers = items
		return nil
	})
	if err := p.Wait(); err != nil {
		markSpanError(span, err)
		return MoversReport{}, err
	}

	all := append(append([]pricehistory.Entry(nil), gainers...), losers...)
	enrich, err := s.enricher(ctx, all)
	if err != nil {
		return MoversReport{}, err
	}

	return MoversReport{
		RoundID: roundID,
		Gainers: enrich(gainers),
		Losers:  enrich(losers),
	}, nil
}

// PlayerHistory lists a player's price movements, newest first.
func (s *ValuationReportService) PlayerHistory(ctx context.Context, playerID string, limit int) ([]pricehistory.Entry, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	items, err := s.historyRepo.ListByPlayer(ctx, playerID, clampLimit(limit, defaultHistoryLimit, maxHistoryLimit))
	if err != nil {
		return nil, fmt.Errorf("list player price history: %w", err)
	}
	return items, nil
}

// ExportRoundCSV renders the whole round history as CSV, biggest delta first.
func (s *ValuationReportService) ExportRoundCSV(ctx context.Context, roundID string) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValuationReportService.ExportRoundCSV", roundAttr(roundID))
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if err := s.ensureRound(ctx, roundID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list round price history: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Delta.GreaterThan(entries[j].Delta)
	})

	enrich, err := s.enricher(ctx, entries)
	if err != nil {
		return nil, err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	_ = w.Write([]string{"player_id", "player_name", "position", "team", "old_price", "new_price", "delta", "points", "reason"})
	for _, m := range enrich(entries) {
		_ = w.Write([]string{
			m.PlayerID,
			m.PlayerName,
			string(m.Position),
			m.TeamName,
			m.OldPrice.StringFixed(2),
			m.NewPrice.StringFixed(2),
			m.Delta.StringFixed(2),
			m.Points.StringFixed(2),
			m.Reason,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	return append([]byte(nil), buf.B...), nil
}

func (s *ValuationReportService) ensureRound(ctx context.Context, roundID string) error {
	if roundID == "" {
		return fmt.Errorf("%w: round_id is required", ErrInvalidInput)
	}
	_, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	return nil
}

// enricher loads player and team identity for entries and returns a mapper.
func (s *ValuationReportService) enricher(ctx context.Context, entries []pricehistory.Entry) (func([]pricehistory.Entry) []Mover, error) {
	ids := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.PlayerID]; ok {
			continue
		}
		seen[e.PlayerID] = struct{}{}
		ids = append(ids, e.PlayerID)
	}

	var players []player.Player
	var teams []team.Team
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		if len(ids) == 0 {
			return nil
		}
		items, err := s.playerRepo.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("get players by ids: %w", err)
		}
		players = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		teams = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	playerByID := make(map[string]player.Player, len(players))
	for _, item := range players {
		playerByID[item.ID] = item
	}
	teamNameByID := make(map[string]string, len(teams))
	for _, item := range teams {
		teamNameByID[item.ID] = item.Name
	}

	return func(items []pricehistory.Entry) []Mover {
		out := make([]Mover, 0, len(items))
		for _, e := range items {
			pl := playerByID[e.PlayerID]
			out = append(out, Mover{
				PlayerID:   e.PlayerID,
				PlayerName: pl.Name,
				Position:   pl.Position,
				TeamID:     pl.TeamID,
				TeamName:   teamNameByID[pl.TeamID],
				OldPrice:   e.OldPrice,
				NewPrice:   e.NewPrice,
				Delta:      e.Delta,
				Points:     e.PointsScored,
				Reason:     e.Reason,
			})
		}
		return out
	}, nil
}

func clampLimit(limit, fallback, upper int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > upper {
		return upper
	}
	return limit
}

package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/lineup"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/playerstats"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/team"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/infrastructure/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// decimalEq matches decimals by value; testify compares them structurally.
func decimalEq(v string) any {
	want := dec(v)
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(want) })
}

// sequence issues predictable ids such as "round-1".
type sequence struct {
	prefix string
	next   int
}

func newSequence(prefix string) *sequence {
	return &sequence{prefix: prefix}
}

func (s *sequence) NewID() (string, error) {
	s.next++
	return fmt.Sprintf("%s-%d", s.prefix, s.next), nil
}

type testStore struct {
	rounds  *memory.RoundRepository
	teams   *memory.TeamRepository
	players *memory.PlayerRepository
	stats   *memory.PlayerStatsRepository
	history *memory.PriceHistoryRepository
	lineups *memory.LineupRepository
	users   *memory.UserRepository
}

func newTestStore(players []player.Player, rounds []round.Round, users []user.User) *testStore {
	playerRepo := memory.NewPlayerRepository(players)
	return &testStore{
		rounds:  memory.NewRoundRepository(rounds),
		teams:   memory.NewTeamRepository([]team.Team{{ID: "t1", Name: "Magnus Futsal"}, {ID: "t2", Name: "Jaraguá Futsal"}}),
		players: playerRepo,
		stats:   memory.NewPlayerStatsRepository(playerRepo),
		history: memory.NewPriceHistoryRepository(),
		lineups: memory.NewLineupRepository(),
		users:   memory.NewUserRepository(users),
	}
}

func testPlayer(id string, pos player.Position, price string) player.Player {
	teamID := "t1"
	if len(id)%2 == 0 {
		teamID = "t2"
	}
	return player.Player{ID: id, TeamID: teamID, Name: "Player " + id, Position: pos, Price: dec(price)}
}

func (s *testStore) addStat(t *testing.T, playerID, roundID, points string) {
	t.Helper()
	err := s.stats.Insert(context.Background(), playerstats.Statistic{
		ID:        "stat-" + playerID + "-" + roundID,
		PlayerID:  playerID,
		RoundID:   roundID,
		Points:    dec(points),
		CreatedAt: testNow,
	})
	if err != nil {
		t.Fatalf("insert stat: %v", err)
	}
}

func (s *testStore) addLineup(t *testing.T, lineupID, userID, roundID string, playerIDs ...string) {
	t.Helper()
	slots := make([]lineup.Slot, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok, _ := s.players.GetByID(context.Background(), id)
		if !ok {
			t.Fatalf("unknown player %s", id)
		}
		slots = append(slots, lineup.Slot{PlayerID: id, Role: p.Position, IsStarter: true})
	}
	err := s.lineups.Upsert(context.Background(), lineup.Lineup{ID: lineupID, UserID: userID, RoundID: roundID, Slots: slots})
	if err != nil {
		t.Fatalf("upsert lineup: %v", err)
	}
}

func (s *testStore) price(t *testing.T, playerID string) decimal.Decimal {
	t.Helper()
	p, ok, err := s.players.GetByID(context.Background(), playerID)
	if err != nil || !ok {
		t.Fatalf("get player %s: ok=%v err=%v", playerID, ok, err)
	}
	return p.Price
}

func (s *testStore) balance(t *testing.T, userID string) decimal.Decimal {
	t.Helper()
	u, ok, err := s.users.GetByID(context.Background(), userID)
	if err != nil || !ok {
		t.Fatalf("get user %s: ok=%v err=%v", userID, ok, err)
	}
	return u.Balance
}

func (s *testStore) revaluationService() *RevaluationService {
	svc := NewRevaluationService(s.rounds, s.stats, s.history, s.players, 1, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func (s *testStore) portfolioService() *PortfolioService {
	return NewPortfolioService(s.rounds, s.lineups, s.players, s.users, 1, nil)
}

func activeRound(id string) round.Round {
	return round.Round{ID: id, Name: "Rodada " + id, Status: round.StatusActive, CreatedAt: testNow}
}

func pendingRound(id string) round.Round {
	return round.Round{ID: id, Name: "Rodada " + id, Status: round.StatusPending, CreatedAt: testNow}
}

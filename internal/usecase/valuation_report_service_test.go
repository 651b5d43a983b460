package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/pricehistory"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	pricehistorymock "github.com/MatheusCrestaniBastos/LnfFantasy/internal/mocks/domain/pricehistory"
	roundmock "github.com/MatheusCrestaniBastos/LnfFantasy/internal/mocks/domain/round"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func reportFixture(t *testing.T) *testStore {
	t.Helper()
	store := newTestStore(
		[]player.Player{
			testPlayer("a", player.PositionAla, "10.00"),
			testPlayer("bb", player.PositionFixo, "5.00"),
			testPlayer("c", player.PositionPivo, "3.00"),
			testPlayer("dd", player.PositionGoalkeeper, "7.00"),
			testPlayer("e", player.PositionAla, "4.00"),
		},
		[]round.Round{activeRound("r1")},
		nil,
	)
	store.addStat(t, "a", "r1", "9")
	store.addStat(t, "bb", "r1", "1")
	store.addStat(t, "c", "r1", "-2")
	store.addStat(t, "dd", "r1", "3")
	store.addStat(t, "e", "r1", "6")

	_, err := store.revaluationService().Process(context.Background(), "r1")
	require.NoError(t, err)
	return store
}

func (s *testStore) reportService(limit int) *ValuationReportService {
	return NewValuationReportService(s.rounds, s.history, s.players, s.teams, limit)
}

func TestValuationReportService_TopMovers(t *testing.T) {
	t.Parallel()

	store := reportFixture(t)
	report, err := store.reportService(10).TopMovers(context.Background(), "r1", 0)
	require.NoError(t, err)

	require.Len(t, report.Gainers, 2)
	assert.Equal(t, "a", report.Gainers[0].PlayerID)
	assert.Equal(t, "e", report.Gainers[1].PlayerID)
	assert.Equal(t, "Magnus Futsal", report.Gainers[0].TeamName)
	assert.Equal(t, "Player a", report.Gainers[0].PlayerName)

	require.Len(t, report.Losers, 2)
	assert.Equal(t, "c", report.Losers[0].PlayerID)
	assert.Equal(t, "bb", report.Losers[1].PlayerID)
	assert.Equal(t, "Jaraguá Futsal", report.Losers[1].TeamName)

	for _, m := range report.Gainers {
		assert.True(t, m.Delta.IsPositive())
	}
	for _, m := range report.Losers {
		assert.True(t, m.Delta.IsNegative())
	}

	limited, err := store.reportService(1).TopMovers(context.Background(), "r1", 0)
	require.NoError(t, err)
	assert.Len(t, limited.Gainers, 1)
	assert.Len(t, limited.Losers, 1)
}

func TestValuationReportService_TopMoversErrors(t *testing.T) {
	t.Parallel()

	store := reportFixture(t)
	_, err := store.reportService(10).TopMovers(context.Background(), "nope", 5)
	assert.True(t, errors.Is(err, ErrNotFound))

	roundRepo := roundmock.NewRepository(t)
	historyRepo := pricehistorymock.NewRepository(t)
	roundRepo.On("GetByID", mock.Anything, "r1").Return(activeRound("r1"), true, nil).Once()
	historyRepo.On("ListMovers", mock.Anything, "r1", mock.Anything, 100).Return(nil, errors.New("statement timeout")).Maybe()

	svc := NewValuationReportService(roundRepo, historyRepo, store.players, store.teams, 10)
	_, err = svc.TopMovers(context.Background(), "r1", 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement timeout")
}

func TestValuationReportService_ExportRoundCSV(t *testing.T) {
	t.Parallel()

	store := reportFixture(t)
	out, err := store.reportService(10).ExportRoundCSV(context.Background(), "r1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "player_id,player_name,position,team,old_price,new_price,delta,points,reason", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "a,Player a,ALA,Magnus Futsal,10.00,10.30,0.30,9.00,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[4], "c,Player c,PIV,Magnus Futsal,3.00,2.70,-0.30,-2.00,"), lines[4])
}

func TestValuationReportService_PlayerHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore([]player.Player{testPlayer("a", player.PositionAla, "10.00")}, nil, nil)
	for i, roundID := range []string{"r1", "r2", "r3"} {
		err := store.history.Upsert(ctx, pricehistory.Entry{
			PlayerID:  "a",
			RoundID:   roundID,
			OldPrice:  dec("10.00"),
			NewPrice:  dec("10.10"),
			Delta:     dec("0.10"),
			CreatedAt: testNow.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	items, err := store.reportService(10).PlayerHistory(ctx, "a", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "r3", items[0].RoundID)
	assert.Equal(t, "r2", items[1].RoundID)

	_, err = store.reportService(10).PlayerHistory(ctx, "ghost", 0)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, clampLimit(0, 10, 100))
	assert.Equal(t, 10, clampLimit(-3, 10, 100))
	assert.Equal(t, 42, clampLimit(42, 10, 100))
	assert.Equal(t, 100, clampLimit(1000, 10, 100))
}

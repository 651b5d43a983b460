package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/lineup"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	lineupmock "github.com/MatheusCrestaniBastos/LnfFantasy/internal/mocks/domain/lineup"
	playermock "github.com/MatheusCrestaniBastos/LnfFantasy/internal/mocks/domain/player"
	roundmock "github.com/MatheusCrestaniBastos/LnfFantasy/internal/mocks/domain/round"
	usermock "github.com/MatheusCrestaniBastos/LnfFantasy/internal/mocks/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func portfolioFixture(t *testing.T) *testStore {
	t.Helper()
	store := newTestStore(
		[]player.Player{
			testPlayer("g1", player.PositionGoalkeeper, "8.00"),
			testPlayer("f1", player.PositionFixo, "6.50"),
			testPlayer("a1", player.PositionAla, "7.25"),
			testPlayer("a2", player.PositionAla, "5.00"),
			testPlayer("p1", player.PositionPivo, "9.10"),
		},
		[]round.Round{activeRound("r1")},
		[]user.User{
			{ID: "u1", TeamName: "Os Boleiros", Balance: dec("12.00")},
			{ID: "u2", TeamName: "Quadra Viva", Balance: dec("99.00")},
		},
	)
	store.addLineup(t, "l1", "u1", "r1", "g1", "f1", "a1", "a2", "p1")
	store.addLineup(t, "l2", "u2", "r1", "g1", "a1")
	return store
}

func TestPortfolioService_Reconcile(t *testing.T) {
	t.Parallel()

	store := portfolioFixture(t)
	result, err := store.portfolioService().Reconcile(context.Background(), "r1")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Lineups)
	assert.Equal(t, 2, result.UsersUpdated)
	assert.Equal(t, 0, result.Failed)
	assert.True(t, store.balance(t, "u1").Equal(dec("35.85")))
	assert.True(t, store.balance(t, "u2").Equal(dec("15.25")))
}

func TestPortfolioService_ReconcileUsesPricesAfterRevaluation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := portfolioFixture(t)
	store.addStat(t, "g1", "r1", "10")
	store.addStat(t, "p1", "r1", "-4")

	_, err := store.revaluationService().Process(ctx, "r1")
	require.NoError(t, err)

	_, err = store.portfolioService().Reconcile(ctx, "r1")
	require.NoError(t, err)

	// g1 8.00 -> 8.30, p1 9.10 -> 8.80
	assert.True(t, store.balance(t, "u1").Equal(dec("35.85")))
	assert.True(t, store.balance(t, "u2").Equal(dec("15.55")))
}

func TestPortfolioService_ReconcileWithoutLineups(t *testing.T) {
	t.Parallel()

	store := newTestStore(nil, []round.Round{activeRound("r1")}, []user.User{{ID: "u1", TeamName: "x", Balance: dec("50")}})
	result, err := store.portfolioService().Reconcile(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Lineups)
	assert.True(t, store.balance(t, "u1").Equal(dec("50")))
}

func TestPortfolioService_ReconcileRequiresActiveRound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := portfolioFixture(t)
	svc := store.portfolioService()

	_, err := svc.Reconcile(ctx, "r1")
	require.NoError(t, err)

	require.NoError(t, store.rounds.UpdateStatus(ctx, "r1", round.StatusFinished))
	_, err = store.users.ResetAllBalances(ctx, dec("100.00"))
	require.NoError(t, err)

	_, err = svc.Reconcile(ctx, "r1")
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.True(t, store.balance(t, "u1").Equal(dec("100.00")), "reset balance overwritten")
	assert.True(t, store.balance(t, "u2").Equal(dec("100.00")))

	require.NoError(t, store.rounds.Create(ctx, pendingRound("r2")))
	_, err = svc.Reconcile(ctx, "r2")
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	_, err = svc.Reconcile(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPortfolioService_ReconcileSkipsFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lineupRepo := lineupmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	userRepo := usermock.NewRepository(t)
	roundRepo := roundmock.NewRepository(t)

	roundRepo.On("GetByID", mock.Anything, "r1").Return(activeRound("r1"), true, nil).Once()
	lineupRepo.On("ListByRound", mock.Anything, "r1").Return([]lineup.Lineup{
		{ID: "l1", UserID: "u1", RoundID: "r1", Slots: []lineup.Slot{{PlayerID: "a"}, {PlayerID: "b"}}},
		{ID: "l2", UserID: "u2", RoundID: "r1", Slots: []lineup.Slot{{PlayerID: "a"}, {PlayerID: "ghost"}}},
		{ID: "l3", UserID: "u3", RoundID: "r1", Slots: []lineup.Slot{{PlayerID: "b"}}},
	}, nil).Once()

	playerRepo.On("GetByIDs", mock.Anything, []string{"a", "b"}).
		Return([]player.Player{testPlayer("a", player.PositionAla, "4.00"), testPlayer("b", player.PositionFixo, "6.00")}, nil).Once()
	playerRepo.On("GetByIDs", mock.Anything, []string{"a", "ghost"}).
		Return([]player.Player{testPlayer("a", player.PositionAla, "4.00")}, nil).Once()
	playerRepo.On("GetByIDs", mock.Anything, []string{"b"}).
		Return([]player.Player{testPlayer("b", player.PositionFixo, "6.00")}, nil).Once()

	userRepo.On("UpdateBalance", mock.Anything, "u1", decimalEq("10")).Return(nil).Once()
	userRepo.On("UpdateBalance", mock.Anything, "u3", decimalEq("6")).Return(errors.New("deadlock detected")).Once()

	svc := NewPortfolioService(roundRepo, lineupRepo, playerRepo, userRepo, 1, nil)
	result, err := svc.Reconcile(ctx, "r1")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Lineups)
	assert.Equal(t, 1, result.UsersUpdated)
	assert.Equal(t, 2, result.Failed)
	userRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, "u2", mock.Anything)
}

func TestPortfolioService_ReconcileListFailure(t *testing.T) {
	t.Parallel()

	roundRepo := roundmock.NewRepository(t)
	roundRepo.On("GetByID", mock.Anything, "r1").Return(activeRound("r1"), true, nil).Once()
	lineupRepo := lineupmock.NewRepository(t)
	lineupRepo.On("ListByRound", mock.Anything, "r1").Return(nil, errors.New("db down")).Once()

	svc := NewPortfolioService(roundRepo, lineupRepo, playermock.NewRepository(t), usermock.NewRepository(t), 1, nil)
	_, err := svc.Reconcile(context.Background(), "r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestRosterValue(t *testing.T) {
	t.Parallel()

	players := []player.Player{testPlayer("a", player.PositionAla, "1.105"), testPlayer("b", player.PositionFixo, "2.20")}

	total, err := rosterValue([]string{"a", "b"}, players)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("3.31")))

	_, err = rosterValue([]string{"a", "c"}, players)
	assert.True(t, errors.Is(err, ErrNotFound))
}

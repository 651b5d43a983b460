package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/team"
	playermock "github.com/MatheusCrestaniBastos/LnfFantasy/internal/mocks/domain/player"
	teammock "github.com/MatheusCrestaniBastos/LnfFantasy/internal/mocks/domain/team"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func playerServiceFixture() *testStore {
	return newTestStore([]player.Player{
		testPlayer("a", player.PositionAla, "10.00"),
		testPlayer("bb", player.PositionFixo, "12.50"),
		testPlayer("c", player.PositionPivo, "10.00"),
	}, nil, nil)
}

func TestPlayerService_List(t *testing.T) {
	t.Parallel()

	store := playerServiceFixture()
	items, err := NewPlayerService(store.players, store.teams, newSequence("player"), dec("5.00"), nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "bb", items[0].Player.ID)
	assert.Equal(t, "Jaraguá Futsal", items[0].TeamName)
	assert.Equal(t, "a", items[1].Player.ID)
	assert.Equal(t, "c", items[2].Player.ID)
}

func TestPlayerService_ResetPrices(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := playerServiceFixture()
	svc := NewPlayerService(store.players, store.teams, newSequence("player"), dec("5.00"), nil)

	count, price, err := svc.ResetPrices(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.True(t, price.Equal(dec("5.00")))
	assert.True(t, store.price(t, "bb").Equal(dec("5.00")))

	tooHigh := dec("35")
	_, price, err = svc.ResetPrices(ctx, &tooHigh)
	require.NoError(t, err)
	assert.True(t, price.Equal(dec("20.00")))
	assert.True(t, store.price(t, "a").Equal(dec("20.00")))

	zero := decimal.Zero
	_, _, err = svc.ResetPrices(ctx, &zero)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestPlayerService_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := playerServiceFixture()
	svc := NewPlayerService(store.players, store.teams, newSequence("player"), dec("5.00"), nil)

	created, err := svc.Create(ctx, CreatePlayerInput{
		TeamID:   "t1",
		Name:     " Ferrão ",
		Position: "piv",
		Price:    dec("27.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "player-1", created.ID)
	assert.Equal(t, "Ferrão", created.Name)
	assert.Equal(t, player.PositionPivo, created.Position)
	assert.True(t, created.Price.Equal(dec("20.00")))
	assert.True(t, store.price(t, "player-1").Equal(dec("20.00")))

	low, err := svc.Create(ctx, CreatePlayerInput{TeamID: "t2", Name: "Reserva", Position: "GOL", Price: dec("0.40")})
	require.NoError(t, err)
	assert.True(t, low.Price.Equal(dec("1.00")))

	tests := []struct {
		name  string
		input CreatePlayerInput
		want  error
	}{
		{name: "unknown team", input: CreatePlayerInput{TeamID: "t9", Name: "X", Position: "ALA", Price: dec("5")}, want: ErrNotFound},
		{name: "missing team", input: CreatePlayerInput{Name: "X", Position: "ALA", Price: dec("5")}, want: ErrInvalidInput},
		{name: "bad position", input: CreatePlayerInput{TeamID: "t1", Name: "X", Position: "ZAG", Price: dec("5")}, want: ErrInvalidInput},
		{name: "zero price", input: CreatePlayerInput{TeamID: "t1", Name: "X", Position: "ALA", Price: decimal.Zero}, want: ErrInvalidInput},
		{name: "blank name", input: CreatePlayerInput{TeamID: "t1", Name: " ", Position: "ALA", Price: dec("5")}, want: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPlayerService_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := playerServiceFixture()
	svc := NewPlayerService(store.players, store.teams, newSequence("player"), dec("5.00"), nil)

	require.NoError(t, svc.Delete(ctx, "a"))
	_, exists, err := store.players.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.True(t, errors.Is(svc.Delete(ctx, "a"), ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, ""), ErrInvalidInput))
}

func TestPlayerService_DeleteReferencedPlayerConflicts(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	playerRepo.On("Delete", mock.Anything, "p1").
		Return(false, fmt.Errorf("delete player p1: %w", player.ErrReferenced)).Once()

	svc := NewPlayerService(playerRepo, teammock.NewRepository(t), newSequence("player"), dec("5.00"), nil)
	err := svc.Delete(context.Background(), "p1")
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestPlayerService_CreateRepositoryFailure(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	teamRepo.On("GetByID", mock.Anything, "t1").Return(team.Team{ID: "t1", Name: "Magnus"}, true, nil).Once()
	playerRepo.On("Create", mock.Anything, mock.AnythingOfType("player.Player")).Return(errors.New("connection refused")).Once()

	svc := NewPlayerService(playerRepo, teamRepo, newSequence("player"), dec("5.00"), nil)
	_, err := svc.Create(context.Background(), CreatePlayerInput{TeamID: "t1", Name: "Pito", Position: "PIV", Price: dec("12")})
	assert.ErrorContains(t, err, "connection refused")
}

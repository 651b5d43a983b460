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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeamService_CreateAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(nil, nil, nil)
	svc := NewTeamService(store.teams, store.players, newSequence("team"), nil)

	created, err := svc.Create(ctx, CreateTeamInput{Name: "  Cascavel Futsal ", LogoURL: "https://lnf.com.br/cascavel.png"})
	require.NoError(t, err)
	assert.Equal(t, "team-1", created.ID)
	assert.Equal(t, "Cascavel Futsal", created.Name)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = svc.Create(ctx, CreateTeamInput{Name: " "})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestTeamService_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore([]player.Player{testPlayer("a", player.PositionAla, "5.00")}, nil, nil)
	svc := NewTeamService(store.teams, store.players, newSequence("team"), nil)

	err := svc.Delete(ctx, "t1")
	assert.True(t, errors.Is(err, ErrConflict), "t1 still has player a: %v", err)

	require.NoError(t, svc.Delete(ctx, "t2"))
	_, exists, err := store.teams.GetByID(ctx, "t2")
	require.NoError(t, err)
	assert.False(t, exists)

	err = svc.Delete(ctx, "t2")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = svc.Delete(ctx, " ")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestTeamService_DeleteMapsForeignKeyToConflict(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	playerRepo.On("List", mock.Anything).Return([]player.Player{}, nil).Once()
	teamRepo.On("Delete", mock.Anything, "t1").
		Return(false, fmt.Errorf("delete team t1: %w", team.ErrHasPlayers)).Once()

	err := NewTeamService(teamRepo, playerRepo, newSequence("team"), nil).Delete(context.Background(), "t1")
	assert.True(t, errors.Is(err, ErrConflict))
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	usermock "github.com/MatheusCrestaniBastos/LnfFantasy/internal/mocks/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Ranking(t *testing.T) {
	t.Parallel()

	store := newTestStore(nil, nil, []user.User{
		{ID: "u1", TeamName: "Quadra Viva", TotalPoints: dec("40.5"), Balance: dec("12.00")},
		{ID: "u2", TeamName: "Os Boleiros", TotalPoints: dec("72"), Balance: dec("3.10")},
		{ID: "u3", TeamName: "Bola Murcha", TotalPoints: dec("40.5"), Balance: dec("100.00")},
	})

	ranking, err := NewDashboardService(store.users).Ranking(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, ranking, 3)

	assert.Equal(t, 1, ranking[0].Position)
	assert.Equal(t, "u2", ranking[0].UserID)
	assert.True(t, ranking[0].TotalPoints.Equal(dec("72")))
	assert.Equal(t, "u3", ranking[1].UserID)
	assert.Equal(t, 3, ranking[2].Position)
	assert.Equal(t, "Quadra Viva", ranking[2].TeamName)
}

func TestDashboardService_RankingLimits(t *testing.T) {
	t.Parallel()

	userRepo := usermock.NewRepository(t)
	userRepo.On("ListRanking", mock.Anything, defaultRankingLimit).Return([]user.User{}, nil).Once()
	userRepo.On("ListRanking", mock.Anything, maxRankingLimit).Return([]user.User{}, nil).Once()
	userRepo.On("ListRanking", mock.Anything, 5).Return(nil, errors.New("db down")).Once()

	svc := NewDashboardService(userRepo)

	_, err := svc.Ranking(context.Background(), 0)
	require.NoError(t, err)
	_, err = svc.Ranking(context.Background(), 1000)
	require.NoError(t, err)
	_, err = svc.Ranking(context.Background(), 5)
	assert.ErrorContains(t, err, "db down")
}

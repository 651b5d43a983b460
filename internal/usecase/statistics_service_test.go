package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/playerstats"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testStore) statisticsService() *StatisticsService {
	svc := NewStatisticsService(s.rounds, s.players, s.stats, newSequence("stat"), nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func statisticsFixture() *testStore {
	finished := activeRound("r0")
	finished.Status = round.StatusFinished
	return newTestStore(
		[]player.Player{testPlayer("a", player.PositionAla, "10.00"), testPlayer("g", player.PositionGoalkeeper, "6.00")},
		[]round.Round{finished, activeRound("r1"), pendingRound("r2")},
		nil,
	)
}

func TestStatisticsService_Record(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statisticsFixture()
	svc := store.statisticsService()

	stat, err := svc.Record(ctx, RecordStatisticInput{
		RoundID:  "r1",
		PlayerID: "a",
		Scout:    playerstats.Scout{Goals: 1, Assists: 1, Fouls: 3, YellowCards: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "stat-1", stat.ID)
	assert.True(t, stat.Points.Equal(dec("11.1")), "points %s", stat.Points)
	assert.Equal(t, testNow, stat.CreatedAt)

	_, err = svc.Record(ctx, RecordStatisticInput{RoundID: "r1", PlayerID: "a", Scout: playerstats.Scout{Goals: 3}})
	assert.True(t, errors.Is(err, ErrConflict))

	items, err := svc.ListByRound(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Scout.Goals)
}

func TestStatisticsService_RecordFinishedRoundIsAccepted(t *testing.T) {
	t.Parallel()

	store := statisticsFixture()
	stat, err := store.statisticsService().Record(context.Background(), RecordStatisticInput{
		RoundID:  "r0",
		PlayerID: "g",
		Scout:    playerstats.Scout{Saves: 2, CleanSheet: true},
	})
	require.NoError(t, err)
	assert.True(t, stat.Points.Equal(dec("19")))
}

func TestStatisticsService_RecordRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   RecordStatisticInput
		wantErr error
	}{
		{name: "missing round", input: RecordStatisticInput{PlayerID: "a"}, wantErr: ErrInvalidInput},
		{name: "negative count", input: RecordStatisticInput{RoundID: "r1", PlayerID: "a", Scout: playerstats.Scout{Goals: -1}}, wantErr: ErrInvalidInput},
		{name: "pending round", input: RecordStatisticInput{RoundID: "r2", PlayerID: "a"}, wantErr: ErrInvalidInput},
		{name: "unknown round", input: RecordStatisticInput{RoundID: "r9", PlayerID: "a"}, wantErr: ErrNotFound},
		{name: "unknown player", input: RecordStatisticInput{RoundID: "r1", PlayerID: "zz"}, wantErr: ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := statisticsFixture().statisticsService().Record(context.Background(), tc.input)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

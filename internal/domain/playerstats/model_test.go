package playerstats

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculatePoints(t *testing.T) {
	tests := []struct {
		name  string
		scout Scout
		want  string
	}{
		{name: "empty sheet", scout: Scout{}, want: "0"},
		{name: "goal and assist", scout: Scout{Goals: 1, Assists: 1}, want: "13"},
		{name: "goalkeeper clean sheet", scout: Scout{Saves: 3, CleanSheet: true}, want: "26"},
		{name: "fouls only", scout: Scout{Fouls: 3}, want: "-0.9"},
		{
			name:  "mixed sheet",
			scout: Scout{Goals: 2, ShotsOnTarget: 1, OwnGoals: 1, YellowCards: 1, RedCards: 1, Fouls: 5},
			want:  "8.5",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculatePoints(tc.scout, DefaultWeights())
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("points = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestScoutValidate(t *testing.T) {
	if err := (Scout{Goals: 1}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Scout{Fouls: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative fouls")
	}
}

func TestStatisticValidate(t *testing.T) {
	stat := Statistic{ID: "s1", PlayerID: "p1", RoundID: "r1"}
	if err := stat.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stat.RoundID = " "
	if err := stat.Validate(); err == nil {
		t.Fatalf("expected error for missing round id")
	}
}

package playerstats

import (
	"fmt"
	"strings"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/shopspring/decimal"
)

// Scout holds the raw per-match counts entered by an administrator.
type Scout struct {
	Goals         int
	Assists       int
	ShotsOnTarget int
	Saves         int
	CleanSheet    bool
	OwnGoals      int
	YellowCards   int
	RedCards      int
	Fouls         int
}

// Statistic is one player's scout sheet for one round.
type Statistic struct {
	ID        string
	PlayerID  string
	RoundID   string
	Scout     Scout
	Points    decimal.Decimal
	CreatedAt time.Time
}

// Performance joins a statistic with the player's identity and current price.
type Performance struct {
	Statistic Statistic
	Player    player.Player
}

// Weights maps each scout category to the points it is worth.
type Weights struct {
	Goal         decimal.Decimal
	Assist       decimal.Decimal
	ShotOnTarget decimal.Decimal
	Save         decimal.Decimal
	CleanSheet   decimal.Decimal
	OwnGoal      decimal.Decimal
	YellowCard   decimal.Decimal
	RedCard      decimal.Decimal
	Foul         decimal.Decimal
}

func DefaultWeights() Weights {
	return Weights{
		Goal:         decimal.NewFromInt(8),
		Assist:       decimal.NewFromInt(5),
		ShotOnTarget: decimal.NewFromInt(3),
		Save:         decimal.NewFromInt(7),
		CleanSheet:   decimal.NewFromInt(5),
		OwnGoal:      decimal.NewFromInt(-3),
		YellowCard:   decimal.NewFromInt(-1),
		RedCard:      decimal.NewFromInt(-5),
		Foul:         decimal.RequireFromString("-0.3"),
	}
}

// CalculatePoints applies the weighted sum to a scout sheet, rounded to cents.
func CalculatePoints(s Scout, w Weights) decimal.Decimal {
	total := decimal.Zero
	add := func(count int, weight decimal.Decimal) {
		total = total.Add(decimal.NewFromInt(int64(count)).Mul(weight))
	}

	add(s.Goals, w.Goal)
	add(s.Assists, w.Assist)
	add(s.ShotsOnTarget, w.ShotOnTarget)
	add(s.Saves, w.Save)
	if s.CleanSheet {
		add(1, w.CleanSheet)
	}
	add(s.OwnGoals, w.OwnGoal)
	add(s.YellowCards, w.YellowCard)
	add(s.RedCards, w.RedCard)
	add(s.Fouls, w.Foul)

	return total.Round(2)
}

func (s Scout) Validate() error {
	counts := map[string]int{
		"goals":           s.Goals,
		"assists":         s.Assists,
		"shots on target": s.ShotsOnTarget,
		"saves":           s.Saves,
		"own goals":       s.OwnGoals,
		"yellow cards":    s.YellowCards,
		"red cards":       s.RedCards,
		"fouls":           s.Fouls,
	}
	for name, v := range counts {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0", name)
		}
	}

	return nil
}

func (s Statistic) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("statistic id is required")
	}
	if strings.TrimSpace(s.PlayerID) == "" {
		return fmt.Errorf("statistic player id is required")
	}
	if strings.TrimSpace(s.RoundID) == "" {
		return fmt.Errorf("statistic round id is required")
	}

	return s.Scout.Validate()
}

package fantasy

import (
	"errors"
	"fmt"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidLineupSize       = errors.New("invalid lineup size")
	ErrExceededBudget          = errors.New("balance exceeded")
	ErrFormationMismatch       = errors.New("lineup does not match formation")
	ErrUnknownPlayerPosition   = errors.New("unknown player position")
	ErrDuplicatePlayerInLineup = errors.New("duplicate player in lineup")
)

// Pick is one chosen player priced at the moment of the save.
type Pick struct {
	PlayerID string
	Position player.Position
	Price    decimal.Decimal
}

// Rules stores lineup validation parameters.
type Rules struct {
	LineupSize      int
	Formation       map[player.Position]int
	StartingBalance decimal.Decimal
}

func DefaultRules() Rules {
	return Rules{
		LineupSize: 5,
		Formation: map[player.Position]int{
			player.PositionGoalkeeper: 1,
			player.PositionFixo:       1,
			player.PositionAla:        2,
			player.PositionPivo:       1,
		},
		StartingBalance: decimal.RequireFromString("100.00"),
	}
}

// ValidateLineup checks size, uniqueness, exact formation and that the
// total cost fits in the available balance. It returns the total cost.
func ValidateLineup(picks []Pick, rules Rules, available decimal.Decimal) (decimal.Decimal, error) {
	if len(picks) != rules.LineupSize {
		return decimal.Zero, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLineupSize, rules.LineupSize, len(picks))
	}

	positionCounter := make(map[player.Position]int)
	playerSet := make(map[string]struct{})
	totalCost := decimal.Zero

	for _, pick := range picks {
		if pick.PlayerID == "" {
			return decimal.Zero, fmt.Errorf("player id is required")
		}
		if _, exists := playerSet[pick.PlayerID]; exists {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrDuplicatePlayerInLineup, pick.PlayerID)
		}
		playerSet[pick.PlayerID] = struct{}{}

		if _, ok := player.AllPositions[pick.Position]; !ok {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownPlayerPosition, pick.Position)
		}
		if !pick.Price.IsPositive() {
			return decimal.Zero, fmt.Errorf("player price must be greater than zero: %s", pick.PlayerID)
		}

		positionCounter[pick.Position]++
		totalCost = totalCost.Add(pick.Price)
	}

	for pos, required := range rules.Formation {
		if positionCounter[pos] != required {
			return decimal.Zero, fmt.Errorf("%w: pos=%s required=%d current=%d", ErrFormationMismatch, pos, required, positionCounter[pos])
		}
	}

	if totalCost.GreaterThan(available) {
		return decimal.Zero, fmt.Errorf("%w: available=%s cost=%s", ErrExceededBudget, available.StringFixed(2), totalCost.StringFixed(2))
	}

	return totalCost, nil
}

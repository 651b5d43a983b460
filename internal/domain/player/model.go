package player

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Position represents futsal position categories used in lineup formation rules.
type Position string

const (
	PositionGoalkeeper Position = "GOL"
	PositionFixo       Position = "FIX"
	PositionAla        Position = "ALA"
	PositionPivo       Position = "PIV"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionFixo:       {},
	PositionAla:        {},
	PositionPivo:       {},
}

// Player is a selectable athlete in the league market.
type Player struct {
	ID       string
	TeamID   string
	Name     string
	Position Position
	Price    decimal.Decimal
	PhotoURL string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("player price must be greater than zero")
	}

	return nil
}

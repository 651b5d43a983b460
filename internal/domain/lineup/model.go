package lineup

import (
	"fmt"
	"strings"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/shopspring/decimal"
)

// Slot references one rostered player by role. Price is never copied here:
// the player's current price is read at the time it is needed.
type Slot struct {
	PlayerID  string
	Role      player.Position
	IsStarter bool
	Points    decimal.Decimal
}

// Lineup stores one user's five-player roster for a round.
type Lineup struct {
	ID          string
	UserID      string
	RoundID     string
	Slots       []Slot
	TotalPoints decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (l Lineup) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("lineup id is required")
	}
	if strings.TrimSpace(l.UserID) == "" {
		return fmt.Errorf("lineup user id is required")
	}
	if strings.TrimSpace(l.RoundID) == "" {
		return fmt.Errorf("lineup round id is required")
	}
	if len(l.Slots) == 0 {
		return fmt.Errorf("lineup slots are required")
	}

	return nil
}

func (l Lineup) PlayerIDs() []string {
	out := make([]string, 0, len(l.Slots))
	for _, slot := range l.Slots {
		out = append(out, slot.PlayerID)
	}
	return out
}

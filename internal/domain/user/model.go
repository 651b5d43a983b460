package user

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const RoleAdmin = "admin"

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(p.Role), RoleAdmin)
}

// User is a team owner competing in the league.
type User struct {
	ID          string
	TeamName    string
	Balance     decimal.Decimal
	TotalPoints decimal.Decimal
	IsAdmin     bool
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.TeamName) == "" {
		return fmt.Errorf("user team name is required")
	}
	if u.Balance.IsNegative() {
		return fmt.Errorf("user balance must be >= 0")
	}

	return nil
}

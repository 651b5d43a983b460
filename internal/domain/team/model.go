package team

import "fmt"

// Team is a real futsal club of the league.
type Team struct {
	ID      string
	Name    string
	LogoURL string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

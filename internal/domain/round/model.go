package round

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle stage of a round.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

var ErrInvalidTransition = errors.New("invalid round status transition")

// Round is one scoring period with its own market window.
// The market is open while the round is pending and closed once it goes active.
type Round struct {
	ID        string
	Name      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Round) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("round id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("round name is required")
	}
	if !r.Status.Valid() {
		return fmt.Errorf("invalid round status: %s", r.Status)
	}

	return nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusFinished:
		return true
	default:
		return false
	}
}

// MarketOpen reports whether lineups may still be saved against the round.
func (r Round) MarketOpen() bool {
	return r.Status == StatusPending
}

// CanTransition reports whether from -> to is an allowed edge of
// pending -> active -> finished. Finished is terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusActive
	case StatusActive:
		return to == StatusFinished
	default:
		return false
	}
}

// ValidateTransition wraps ErrInvalidTransition with the offending edge.
func ValidateTransition(from, to Status) error {
	if CanTransition(from, to) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

package team

import (
	"context"
	"errors"
)

// ErrHasPlayers is returned by Delete while players still belong to the club.
var ErrHasPlayers = errors.New("team still has players")

// Repository describes club persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	Create(ctx context.Context, item Team) error
	// Delete reports false when no club has the id.
	Delete(ctx context.Context, teamID string) (bool, error)
}

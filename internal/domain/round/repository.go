package round

import "context"

// Repository exposes round persistence operations.
type Repository interface {
	Create(ctx context.Context, round Round) error
	GetByID(ctx context.Context, roundID string) (Round, bool, error)
	List(ctx context.Context) ([]Round, error)
	GetLatestByStatus(ctx context.Context, status Status) (Round, bool, error)
	UpdateStatus(ctx context.Context, roundID string, status Status) error
}

package cache

import (
	"context"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/team"
	basecache "github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/cache"
)

const teamListKey = "team:list"

// TeamRepository caches the club catalog. Admin writes drop the cached list.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store[[]team.Team]
}

func NewTeamRepository(next team.Repository, cache *basecache.Store[[]team.Team]) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := r.cache.GetOrLoad(ctx, teamListKey, func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return team.Team{}, false, err
	}
	for _, item := range items {
		if item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, teamListKey)
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) (bool, error) {
	deleted, err := r.next.Delete(ctx, teamID)
	if err != nil {
		return false, err
	}
	if deleted {
		r.cache.Delete(ctx, teamListKey)
	}
	return deleted, nil
}

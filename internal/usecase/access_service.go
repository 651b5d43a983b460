package usecase

import (
	"context"
	"fmt"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
)

// AccessService decides whether an authenticated caller may run admin operations.
type AccessService struct {
	userRepo user.Repository
}

func NewAccessService(userRepo user.Repository) *AccessService {
	return &AccessService{userRepo: userRepo}
}

// IsAdmin trusts the identity provider role first and falls back to the
// admin flag stored on the team owner record.
func (s *AccessService) IsAdmin(ctx context.Context, principal user.Principal) (bool, error) {
	if principal.IsAdmin() {
		return true, nil
	}
	if principal.UserID == "" {
		return false, nil
	}

	owner, exists, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return false, fmt.Errorf("%w: get user: %v", ErrDependencyUnavailable, err)
	}
	return exists && owner.IsAdmin, nil
}

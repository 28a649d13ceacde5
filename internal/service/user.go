package service

import (
	"context"
	"fmt"

	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.Component("service/user"),
	}
}

// ListTeamMembers returns the caller's teammates, paginated.
func (s *UserService) ListTeamMembers(ctx context.Context, identity *domain.Identity, offset, limit int) ([]*domain.User, error) {
	if identity.TeamID == nil {
		return nil, domain.ErrNotInTeam
	}

	users, err := s.userRepo.ListByTeam(ctx, *identity.TeamID, offset, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	return users, nil
}

// GetProfile shows another user's profile to teammates and superusers.
// Unlike task lookups, a cross-team profile is forbidden rather than
// hidden.
func (s *UserService) GetProfile(ctx context.Context, identity *domain.Identity, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !sameTeam(identity.TeamID, user.TeamID) && !identity.IsSuperuser {
		return nil, domain.ErrForbidden
	}

	return user, nil
}

func sameTeam(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

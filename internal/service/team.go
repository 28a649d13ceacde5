package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	. "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/repository"
)

// team codes are the first uuid segment, 8 hex chars; collisions are
// rare but possible, so creation retries against the unique constraint
const teamCodeAttempts = 5

type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewTeamService(
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	logger *logger.Logger,
) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		logger:   logger.Component("service/team"),
	}
}

// CreateTeam is admin-only. The generated team_code is what members
// later join by.
func (s *TeamService) CreateTeam(ctx context.Context, identity *domain.Identity, name string) (*domain.Team, error) {
	if err := domain.Decide(identity, domain.RequireAdmin, domain.Scope{}); err != nil {
		return nil, err
	}

	if err := Validate(name, Required, Length(1, 255)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var created *domain.Team
	for attempt := 0; attempt < teamCodeAttempts; attempt++ {
		team := &domain.Team{
			Name:      name,
			TeamCode:  newTeamCode(),
			CreatorID: identity.UserID,
		}

		var err error
		created, err = s.teamRepo.Create(ctx, team)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrTeamCodeTaken) {
			continue
		}
		if errors.Is(err, domain.ErrTeamExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create team: %w", err)
	}
	if created == nil {
		return nil, domain.ErrTeamCodeTaken
	}

	s.logger.Info("team created",
		"team_id", created.ID,
		"name", created.Name,
		"creator_id", identity.UserID,
	)

	return created, nil
}

// JoinTeam assigns the caller to the team matching the code. Membership
// is set exactly once: the repository only writes when team_id is still
// null, so racing joins cannot land a user in two teams.
func (s *TeamService) JoinTeam(ctx context.Context, identity *domain.Identity, code string) (*domain.Team, error) {
	if identity.TeamID != nil {
		return nil, domain.ErrAlreadyInTeam
	}

	if err := Validate(code, Required, Length(1, 64)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	team, err := s.teamRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get team by code: %w", err)
	}

	if err := s.userRepo.AssignTeam(ctx, identity.UserID, team.ID); err != nil {
		return nil, fmt.Errorf("assign team: %w", err)
	}

	s.logger.Info("user joined team",
		"user_id", identity.UserID,
		"team_id", team.ID,
	)

	return team, nil
}

func newTeamCode() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

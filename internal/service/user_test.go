package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teamly/teamly/internal/domain"
)

func TestListTeamMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("lists teammates", func(t *testing.T) {
		users := &userRepoMock{}
		users.On("ListByTeam", ctx, int64(10), 0, defaultListLimit).
			Return([]*domain.User{teamUser(2, 10), teamUser(3, 10)}, nil)

		svc := NewUserService(users, testLogger())

		members, err := svc.ListTeamMembers(ctx, memberIdentity(2, 10), 0, 0)
		require.NoError(t, err)
		require.Len(t, members, 2)
		users.AssertExpectations(t)
	})

	t.Run("teamless caller", func(t *testing.T) {
		svc := NewUserService(&userRepoMock{}, testLogger())

		id := &domain.Identity{UserID: 2, Role: domain.RoleUser, IsActive: true}
		_, err := svc.ListTeamMembers(ctx, id, 0, 0)
		require.ErrorIs(t, err, domain.ErrNotInTeam)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("teammate profile is visible", func(t *testing.T) {
		users := &userRepoMock{}
		users.On("GetByID", ctx, int64(3)).Return(teamUser(3, 10), nil)

		svc := NewUserService(users, testLogger())

		profile, err := svc.GetProfile(ctx, memberIdentity(2, 10), 3)
		require.NoError(t, err)
		require.Equal(t, int64(3), profile.ID)
	})

	t.Run("cross-team profile is forbidden", func(t *testing.T) {
		users := &userRepoMock{}
		users.On("GetByID", ctx, int64(3)).Return(teamUser(3, 99), nil)

		svc := NewUserService(users, testLogger())

		_, err := svc.GetProfile(ctx, memberIdentity(2, 10), 3)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("superuser sees any profile", func(t *testing.T) {
		users := &userRepoMock{}
		users.On("GetByID", ctx, int64(3)).Return(teamUser(3, 99), nil)

		svc := NewUserService(users, testLogger())

		id := &domain.Identity{UserID: 1, Role: domain.RoleAdmin, IsActive: true, IsSuperuser: true}
		_, err := svc.GetProfile(ctx, id, 3)
		require.NoError(t, err)
	})
}

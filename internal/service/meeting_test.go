package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/teamly/teamly/internal/domain"
)

func newMeetingService(meetings *meetingRepoMock, users *userRepoMock, teams *teamRepoMock) *MeetingService {
	return NewMeetingService(meetings, users, teams, testLogger())
}

func teamUser(id, teamID int64) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleUser, IsActive: true, TeamID: &teamID}
}

func TestCreateMeeting(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	input := func() *CreateMeetingInput {
		return &CreateMeetingInput{
			Title:          "standup",
			StartTime:      start,
			EndTime:        end,
			ParticipantIDs: []int64{2, 3},
		}
	}

	t.Run("books for the whole participant set", func(t *testing.T) {
		users := &userRepoMock{}
		users.On("GetByIDs", ctx, []int64{2, 3}).
			Return([]*domain.User{teamUser(2, 10), teamUser(3, 10)}, nil)
		meetings := &meetingRepoMock{}
		meetings.On("CreateWithParticipants", ctx, mock.MatchedBy(func(m *domain.Meeting) bool {
			return m.Title == "standup" && m.TeamID == 10
		}), mock.Anything).Return(&domain.Meeting{ID: 50, Title: "standup", StartTime: start, EndTime: end, TeamID: 10}, nil)

		svc := newMeetingService(meetings, users, &teamRepoMock{})

		created, err := svc.CreateMeeting(ctx, managerIdentity(10), input())
		require.NoError(t, err)
		require.Equal(t, int64(50), created.ID)
		meetings.AssertExpectations(t)
	})

	t.Run("regular member is forbidden", func(t *testing.T) {
		svc := newMeetingService(&meetingRepoMock{}, &userRepoMock{}, &teamRepoMock{})

		_, err := svc.CreateMeeting(ctx, memberIdentity(2, 10), input())
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("manager without a team", func(t *testing.T) {
		svc := newMeetingService(&meetingRepoMock{}, &userRepoMock{}, &teamRepoMock{})

		id := &domain.Identity{UserID: 1, Role: domain.RoleManager, IsActive: true}
		_, err := svc.CreateMeeting(ctx, id, input())
		require.ErrorIs(t, err, domain.ErrNotInTeam)
	})

	t.Run("start must precede end", func(t *testing.T) {
		svc := newMeetingService(&meetingRepoMock{}, &userRepoMock{}, &teamRepoMock{})

		in := input()
		in.EndTime = in.StartTime
		_, err := svc.CreateMeeting(ctx, managerIdentity(10), in)
		require.ErrorIs(t, err, domain.ErrInvalidInterval)
	})

	t.Run("empty participant list fails validation", func(t *testing.T) {
		svc := newMeetingService(&meetingRepoMock{}, &userRepoMock{}, &teamRepoMock{})

		in := input()
		in.ParticipantIDs = nil
		_, err := svc.CreateMeeting(ctx, managerIdentity(10), in)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("duplicate ids are collapsed", func(t *testing.T) {
		users := &userRepoMock{}
		users.On("GetByIDs", ctx, []int64{2, 3}).
			Return([]*domain.User{teamUser(2, 10), teamUser(3, 10)}, nil)
		meetings := &meetingRepoMock{}
		meetings.On("CreateWithParticipants", ctx, mock.Anything, mock.Anything).
			Return(&domain.Meeting{ID: 51, TeamID: 10}, nil)

		svc := newMeetingService(meetings, users, &teamRepoMock{})

		in := input()
		in.ParticipantIDs = []int64{2, 3, 2, 3}
		_, err := svc.CreateMeeting(ctx, managerIdentity(10), in)
		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("unknown participant", func(t *testing.T) {
		users := &userRepoMock{}
		users.On("GetByIDs", ctx, []int64{2, 3}).
			Return([]*domain.User{teamUser(2, 10)}, nil)

		svc := newMeetingService(&meetingRepoMock{}, users, &teamRepoMock{})

		_, err := svc.CreateMeeting(ctx, managerIdentity(10), input())
		require.ErrorIs(t, err, domain.ErrParticipantNotFound)
	})

	t.Run("participant from another team", func(t *testing.T) {
		users := &userRepoMock{}
		users.On("GetByIDs", ctx, []int64{2, 3}).
			Return([]*domain.User{teamUser(2, 10), teamUser(3, 99)}, nil)

		svc := newMeetingService(&meetingRepoMock{}, users, &teamRepoMock{})

		_, err := svc.CreateMeeting(ctx, managerIdentity(10), input())
		require.ErrorIs(t, err, domain.ErrParticipantsNotInTeam)
	})

	t.Run("overlap names the conflicting participant", func(t *testing.T) {
		users := &userRepoMock{}
		users.On("GetByIDs", ctx, []int64{2, 3}).
			Return([]*domain.User{teamUser(2, 10), teamUser(3, 10)}, nil)
		meetings := &meetingRepoMock{}
		meetings.On("CreateWithParticipants", ctx, mock.Anything, mock.Anything).
			Return(nil, &domain.OverlapError{UserID: 3, Email: "c@example.com"})

		svc := newMeetingService(meetings, users, &teamRepoMock{})

		_, err := svc.CreateMeeting(ctx, managerIdentity(10), input())
		require.ErrorIs(t, err, domain.ErrMeetingOverlap)

		var overlap *domain.OverlapError
		require.True(t, errors.As(err, &overlap))
		require.Equal(t, int64(3), overlap.UserID)
	})
}

func TestDeleteMeeting(t *testing.T) {
	ctx := context.Background()

	meeting := &domain.Meeting{ID: 50, TeamID: 10}
	team := &domain.Team{ID: 10, CreatorID: 1}

	t.Run("team creator deletes", func(t *testing.T) {
		meetings := &meetingRepoMock{}
		meetings.On("GetByID", ctx, int64(50)).Return(meeting, nil)
		meetings.On("Delete", ctx, int64(50)).Return(nil)
		teams := &teamRepoMock{}
		teams.On("GetByID", ctx, int64(10)).Return(team, nil)

		svc := newMeetingService(meetings, &userRepoMock{}, teams)

		require.NoError(t, svc.DeleteMeeting(ctx, memberIdentity(1, 10), 50))
		meetings.AssertExpectations(t)
	})

	t.Run("admin deletes", func(t *testing.T) {
		meetings := &meetingRepoMock{}
		meetings.On("GetByID", ctx, int64(50)).Return(meeting, nil)
		meetings.On("Delete", ctx, int64(50)).Return(nil)
		teams := &teamRepoMock{}
		teams.On("GetByID", ctx, int64(10)).Return(team, nil)

		svc := newMeetingService(meetings, &userRepoMock{}, teams)

		admin := &domain.Identity{UserID: 9, Role: domain.RoleAdmin, IsActive: true}
		require.NoError(t, svc.DeleteMeeting(ctx, admin, 50))
	})

	t.Run("other members are forbidden", func(t *testing.T) {
		meetings := &meetingRepoMock{}
		meetings.On("GetByID", ctx, int64(50)).Return(meeting, nil)
		teams := &teamRepoMock{}
		teams.On("GetByID", ctx, int64(10)).Return(team, nil)

		svc := newMeetingService(meetings, &userRepoMock{}, teams)

		err := svc.DeleteMeeting(ctx, memberIdentity(4, 10), 50)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing meeting", func(t *testing.T) {
		meetings := &meetingRepoMock{}
		meetings.On("GetByID", ctx, int64(50)).Return(nil, domain.ErrMeetingNotFound)

		svc := newMeetingService(meetings, &userRepoMock{}, &teamRepoMock{})

		err := svc.DeleteMeeting(ctx, adminIdentity(), 50)
		require.ErrorIs(t, err, domain.ErrMeetingNotFound)
	})
}

func TestDedupe(t *testing.T) {
	require.Equal(t, []int64{3, 1, 2}, dedupe([]int64{3, 1, 3, 2, 1}))
	require.Empty(t, dedupe(nil))
}

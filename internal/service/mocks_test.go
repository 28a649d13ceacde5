package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/repository"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func ptr[T any](v T) *T { return &v }

type userRepoMock struct{ mock.Mock }

var _ repository.UserRepository = (*userRepoMock)(nil)

func (m *userRepoMock) Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	args := m.Called(ctx, user, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *userRepoMock) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *userRepoMock) GetByIDs(ctx context.Context, userIDs []int64) ([]*domain.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *userRepoMock) ListByTeam(ctx context.Context, teamID int64, offset, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, teamID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *userRepoMock) AssignTeam(ctx context.Context, userID, teamID int64) error {
	args := m.Called(ctx, userID, teamID)
	return args.Error(0)
}

type teamRepoMock struct{ mock.Mock }

var _ repository.TeamRepository = (*teamRepoMock)(nil)

func (m *teamRepoMock) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *teamRepoMock) GetByID(ctx context.Context, teamID int64) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *teamRepoMock) GetByCode(ctx context.Context, code string) (*domain.Team, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

type taskRepoMock struct{ mock.Mock }

var _ repository.TaskRepository = (*taskRepoMock)(nil)

func (m *taskRepoMock) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *taskRepoMock) GetForTeam(ctx context.Context, taskID, teamID int64) (*domain.Task, error) {
	args := m.Called(ctx, taskID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *taskRepoMock) ListByTeam(ctx context.Context, teamID int64, offset, limit int) ([]*domain.Task, error) {
	args := m.Called(ctx, teamID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *taskRepoMock) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *taskRepoMock) Delete(ctx context.Context, taskID int64) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *taskRepoMock) ListByAssigneeDeadline(ctx context.Context, userID int64, from, to time.Time) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

type meetingRepoMock struct{ mock.Mock }

var _ repository.MeetingRepository = (*meetingRepoMock)(nil)

func (m *meetingRepoMock) CreateWithParticipants(ctx context.Context, meeting *domain.Meeting, participants []*domain.User) (*domain.Meeting, error) {
	args := m.Called(ctx, meeting, participants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *meetingRepoMock) GetByID(ctx context.Context, meetingID int64) (*domain.Meeting, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *meetingRepoMock) ListByParticipant(ctx context.Context, userID int64) ([]*domain.Meeting, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Meeting), args.Error(1)
}

func (m *meetingRepoMock) ListByParticipantBetween(ctx context.Context, userID int64, from, to time.Time) ([]*domain.Meeting, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Meeting), args.Error(1)
}

func (m *meetingRepoMock) Delete(ctx context.Context, meetingID int64) error {
	args := m.Called(ctx, meetingID)
	return args.Error(0)
}

type evaluationRepoMock struct{ mock.Mock }

var _ repository.EvaluationRepository = (*evaluationRepoMock)(nil)

func (m *evaluationRepoMock) Create(ctx context.Context, evaluation *domain.Evaluation) (*domain.Evaluation, error) {
	args := m.Called(ctx, evaluation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evaluation), args.Error(1)
}

func (m *evaluationRepoMock) ExistsForTask(ctx context.Context, taskID int64) (bool, error) {
	args := m.Called(ctx, taskID)
	return args.Bool(0), args.Error(1)
}

func (m *evaluationRepoMock) ListByAssignee(ctx context.Context, userID int64) ([]*domain.Evaluation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Evaluation), args.Error(1)
}

func (m *evaluationRepoMock) AverageForAssignee(ctx context.Context, userID int64, since time.Time) (float64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(float64), args.Error(1)
}

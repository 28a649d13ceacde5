package repository

import (
	"context"
	"time"

	"github.com/teamly/teamly/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error)
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, string, error)
	GetByIDs(ctx context.Context, userIDs []int64) ([]*domain.User, error)
	ListByTeam(ctx context.Context, teamID int64, offset, limit int) ([]*domain.User, error)
	AssignTeam(ctx context.Context, userID, teamID int64) error
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) (*domain.Team, error)
	GetByID(ctx context.Context, teamID int64) (*domain.Team, error)
	GetByCode(ctx context.Context, code string) (*domain.Team, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetForTeam(ctx context.Context, taskID, teamID int64) (*domain.Task, error)
	ListByTeam(ctx context.Context, teamID int64, offset, limit int) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, taskID int64) error
	ListByAssigneeDeadline(ctx context.Context, userID int64, from, to time.Time) ([]*domain.Task, error)
}

type MeetingRepository interface {
	CreateWithParticipants(ctx context.Context, meeting *domain.Meeting, participants []*domain.User) (*domain.Meeting, error)
	GetByID(ctx context.Context, meetingID int64) (*domain.Meeting, error)
	ListByParticipant(ctx context.Context, userID int64) ([]*domain.Meeting, error)
	ListByParticipantBetween(ctx context.Context, userID int64, from, to time.Time) ([]*domain.Meeting, error)
	Delete(ctx context.Context, meetingID int64) error
}

type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *domain.Evaluation) (*domain.Evaluation, error)
	ExistsForTask(ctx context.Context, taskID int64) (bool, error)
	ListByAssignee(ctx context.Context, userID int64) ([]*domain.Evaluation, error)
	AverageForAssignee(ctx context.Context, userID int64, since time.Time) (float64, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/go-ozzo/ozzo-validation"
	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/repository"
)

type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	logger *logger.Logger,
) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		logger:   logger.Component("service/task"),
	}
}

type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	AssigneeID  *int64     `json:"assignee_id"`
}

func (in *CreateTaskInput) validate() error {
	return ValidateStruct(in,
		Field(&in.Title, Required, Length(1, 255)),
		Field(&in.Description, Length(0, 10000)),
	)
}

// CreateTask is manager-only and scoped to the creator's team. The
// assignee, when given, must already be in that team.
func (s *TaskService) CreateTask(ctx context.Context, identity *domain.Identity, in *CreateTaskInput) (*domain.Task, error) {
	if err := domain.Decide(identity, domain.RequireManagerOrAbove, domain.Scope{}); err != nil {
		return nil, err
	}
	if identity.TeamID == nil {
		return nil, domain.ErrNotInTeam
	}

	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if in.AssigneeID != nil {
		if err := s.checkAssignee(ctx, *in.AssigneeID, *identity.TeamID); err != nil {
			return nil, err
		}
	}

	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.TaskStatusOpen,
		Deadline:    in.Deadline,
		CreatorID:   identity.UserID,
		AssigneeID:  in.AssigneeID,
		TeamID:      *identity.TeamID,
	}

	created, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info("task created",
		"task_id", created.ID,
		"team_id", created.TeamID,
		"creator_id", identity.UserID,
	)

	return created, nil
}

func (s *TaskService) ListTasks(ctx context.Context, identity *domain.Identity, offset, limit int) ([]*domain.Task, error) {
	if identity.TeamID == nil {
		return nil, domain.ErrNotInTeam
	}

	tasks, err := s.taskRepo.ListByTeam(ctx, *identity.TeamID, offset, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask is team-scoped: a task belonging to another team is reported
// as not found, never as forbidden.
func (s *TaskService) GetTask(ctx context.Context, identity *domain.Identity, taskID int64) (*domain.Task, error) {
	task, err := s.loadTeamTask(ctx, identity, taskID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask applies a partial patch: absent fields are untouched.
// Status transitions are deliberately unrestricted; the evaluation gate
// is what cares about "done".
func (s *TaskService) UpdateTask(ctx context.Context, identity *domain.Identity, taskID int64, patch *domain.TaskPatch) (*domain.Task, error) {
	task, err := s.loadTeamTask(ctx, identity, taskID)
	if err != nil {
		return nil, err
	}

	if err := domain.Decide(identity, domain.RequireOwnerOrManager,
		domain.OwnedScope(task.TeamID, task.CreatorID)); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := Validate(*patch.Title, Required, Length(1, 255)); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown task status", domain.ErrValidation)
		}
		task.Status = *patch.Status
	}
	if patch.Deadline != nil {
		task.Deadline = patch.Deadline
	}
	if patch.AssigneeID != nil {
		if err := s.checkAssignee(ctx, *patch.AssigneeID, task.TeamID); err != nil {
			return nil, err
		}
		task.AssigneeID = patch.AssigneeID
	}

	updated, err := s.taskRepo.Update(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.logger.Info("task updated",
		"task_id", updated.ID,
		"status", updated.Status,
		"editor_id", identity.UserID,
	)

	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, identity *domain.Identity, taskID int64) error {
	task, err := s.loadTeamTask(ctx, identity, taskID)
	if err != nil {
		return err
	}

	if err := domain.Decide(identity, domain.RequireOwnerOrManager,
		domain.OwnedScope(task.TeamID, task.CreatorID)); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.logger.Info("task deleted",
		"task_id", taskID,
		"editor_id", identity.UserID,
	)

	return nil
}

// loadTeamTask masks cross-team existence: callers without a team, or
// looking outside their team, get ErrTaskNotFound.
func (s *TaskService) loadTeamTask(ctx context.Context, identity *domain.Identity, taskID int64) (*domain.Task, error) {
	if identity.TeamID == nil {
		return nil, domain.ErrTaskNotFound
	}

	task, err := s.taskRepo.GetForTeam(ctx, taskID, *identity.TeamID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	return task, nil
}

func (s *TaskService) checkAssignee(ctx context.Context, assigneeID, teamID int64) error {
	assignee, err := s.userRepo.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrAssigneeNotFound
		}
		return fmt.Errorf("get assignee: %w", err)
	}
	if assignee.TeamID == nil || *assignee.TeamID != teamID {
		return domain.ErrAssigneeNotFound
	}
	return nil
}

const defaultListLimit = 100

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > defaultListLimit {
		return defaultListLimit
	}
	return limit
}

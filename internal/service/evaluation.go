package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/repository"
)

type EvaluationService struct {
	evaluationRepo repository.EvaluationRepository
	taskRepo       repository.TaskRepository
	logger         *logger.Logger

	now func() time.Time
}

func NewEvaluationService(
	evaluationRepo repository.EvaluationRepository,
	taskRepo repository.TaskRepository,
	logger *logger.Logger,
) *EvaluationService {
	return &EvaluationService{
		evaluationRepo: evaluationRepo,
		taskRepo:       taskRepo,
		logger:         logger.Component("service/evaluation"),
		now:            time.Now,
	}
}

// CreateEvaluation enforces the gate: manager-or-above, score within
// bounds, task in the caller's team, task done, not yet evaluated. The
// existence pre-check is an early exit only; the unique constraint in
// the repository is what actually closes the concurrent double-insert.
func (s *EvaluationService) CreateEvaluation(ctx context.Context, identity *domain.Identity, taskID int64, score int) (*domain.Evaluation, error) {
	if err := domain.Decide(identity, domain.RequireManagerOrAbove, domain.Scope{}); err != nil {
		return nil, err
	}

	if score < domain.MinScore || score > domain.MaxScore {
		return nil, domain.ErrInvalidScore
	}

	// callers without a team see the same "not found" as cross-team ones
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

	if task.Status != domain.TaskStatusDone {
		return nil, domain.ErrTaskNotDone
	}

	exists, err := s.evaluationRepo.ExistsForTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("check evaluation exists: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyEvaluated
	}

	evaluation := &domain.Evaluation{
		TaskID:      taskID,
		EvaluatorID: identity.UserID,
		Score:       score,
	}

	created, err := s.evaluationRepo.Create(ctx, evaluation)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyEvaluated) {
			return nil, err
		}
		return nil, fmt.Errorf("create evaluation: %w", err)
	}

	s.logger.Info("task evaluated",
		"task_id", taskID,
		"score", score,
		"evaluator_id", identity.UserID,
	)

	return created, nil
}

func (s *EvaluationService) ListMyEvaluations(ctx context.Context, identity *domain.Identity) ([]*domain.Evaluation, error) {
	evaluations, err := s.evaluationRepo.ListByAssignee(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}

	return evaluations, nil
}

type AverageScore struct {
	AverageScore float64 `json:"average_score"`
}

// AverageScore returns the caller's mean evaluation score over the
// trailing week or month, 0.0 when there is nothing to average.
func (s *EvaluationService) AverageScore(ctx context.Context, identity *domain.Identity, period string) (*AverageScore, error) {
	var since time.Time
	switch period {
	case "week":
		since = s.now().AddDate(0, 0, -7)
	case "month":
		since = s.now().AddDate(0, 0, -30)
	default:
		return nil, domain.ErrInvalidPeriod
	}

	avg, err := s.evaluationRepo.AverageForAssignee(ctx, identity.UserID, since)
	if err != nil {
		return nil, fmt.Errorf("average score: %w", err)
	}

	return &AverageScore{AverageScore: math.Round(avg*100) / 100}, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
)

type Evaluation struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

func NewEvaluationRepo(db *pgxpool.Pool, logger *logger.Logger) *Evaluation {
	return &Evaluation{
		db:     db,
		logger: logger.Component("repository/postgres"),
	}
}

// Create inserts the evaluation. The unique constraint on task_id is
// the authoritative one-per-task guard; a concurrent insert that loses
// the race surfaces as ErrAlreadyEvaluated just like the pre-check.
func (r *Evaluation) Create(ctx context.Context, evaluation *domain.Evaluation) (*domain.Evaluation, error) {
	query := `
		INSERT INTO evaluations (task_id, evaluator_id, score, evaluated_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, task_id, evaluator_id, score, evaluated_at`

	var created domain.Evaluation
	err := r.db.QueryRow(ctx, query,
		evaluation.TaskID, evaluation.EvaluatorID, evaluation.Score,
	).Scan(&created.ID, &created.TaskID, &created.EvaluatorID, &created.Score, &created.EvaluatedAt)
	if err != nil {
		if isUniqueViolation(err, "evaluations_task_id_key") {
			return nil, domain.ErrAlreadyEvaluated
		}
		return nil, fmt.Errorf("insert evaluation: %w", err)
	}

	return &created, nil
}

func (r *Evaluation) ExistsForTask(ctx context.Context, taskID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM evaluations WHERE task_id = $1)`

	if err := r.db.QueryRow(ctx, query, taskID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check evaluation exists: %w", err)
	}

	return exists, nil
}

// ListByAssignee returns evaluations of tasks assigned to the user.
func (r *Evaluation) ListByAssignee(ctx context.Context, userID int64) ([]*domain.Evaluation, error) {
	query := `
		SELECT e.id, e.task_id, e.evaluator_id, e.score, e.evaluated_at
		FROM evaluations e
		JOIN tasks t ON t.id = e.task_id
		WHERE t.assignee_id = $1
		ORDER BY e.evaluated_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := make([]*domain.Evaluation, 0)
	for rows.Next() {
		var e domain.Evaluation
		if err := rows.Scan(&e.ID, &e.TaskID, &e.EvaluatorID, &e.Score, &e.EvaluatedAt); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		evaluations = append(evaluations, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return evaluations, nil
}

// AverageForAssignee returns 0 when the user has no evaluations in the
// window, never NULL.
func (r *Evaluation) AverageForAssignee(ctx context.Context, userID int64, since time.Time) (float64, error) {
	query := `
		SELECT COALESCE(AVG(e.score), 0)
		FROM evaluations e
		JOIN tasks t ON t.id = e.task_id
		WHERE t.assignee_id = $1 AND e.evaluated_at >= $2`

	var avg float64
	if err := r.db.QueryRow(ctx, query, userID, since).Scan(&avg); err != nil {
		return 0, fmt.Errorf("query average score: %w", err)
	}

	return avg, nil
}

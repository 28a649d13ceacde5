package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
)

type Task struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

func NewTaskRepo(db *pgxpool.Pool, logger *logger.Logger) *Task {
	return &Task{
		db:     db,
		logger: logger.Component("repository/postgres"),
	}
}

const taskColumns = `id, title, description, status, deadline, creator_id, assignee_id, team_id, created_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Deadline,
		&t.CreatorID, &t.AssigneeID, &t.TeamID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Task) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (title, description, status, deadline, creator_id, assignee_id, team_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRow(ctx, query,
		task.Title, task.Description, task.Status, task.Deadline,
		task.CreatorID, task.AssigneeID, task.TeamID,
	))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return created, nil
}

// GetForTeam scopes the lookup to the caller's team: a task from
// another team comes back as not found, never as forbidden.
func (r *Task) GetForTeam(ctx context.Context, taskID, teamID int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND team_id = $2`

	task, err := scanTask(r.db.QueryRow(ctx, query, taskID, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("query task: %w", err)
	}

	return task, nil
}

func (r *Task) ListByTeam(ctx context.Context, teamID int64, offset, limit int) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE team_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, teamID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return tasks, nil
}

// Update persists the full task row; partial-patch semantics are
// resolved by the service before calling.
func (r *Task) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, deadline = $4, assignee_id = $5
		WHERE id = $6
		RETURNING ` + taskColumns

	updated, err := scanTask(r.db.QueryRow(ctx, query,
		task.Title, task.Description, task.Status, task.Deadline, task.AssigneeID, task.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	return updated, nil
}

func (r *Task) Delete(ctx context.Context, taskID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *Task) ListByAssigneeDeadline(ctx context.Context, userID int64, from, to time.Time) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE assignee_id = $1 AND deadline >= $2 AND deadline < $3
		ORDER BY deadline`

	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query tasks by deadline: %w", err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return tasks, nil
}

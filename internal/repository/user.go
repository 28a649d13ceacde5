package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
)

type User struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

func NewUserRepo(db *pgxpool.Pool, logger *logger.Logger) *User {
	return &User{
		db:     db,
		logger: logger.Component("repository/postgres"),
	}
}

const userColumns = `id, email, full_name, role, is_active, is_superuser, team_id, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.IsActive, &u.IsSuperuser, &u.TeamID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *User) Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, full_name, role, is_active, is_superuser, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query,
		user.Email, passwordHash, user.FullName, user.Role, user.IsActive, user.IsSuperuser,
	))
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return created, nil
}

func (r *User) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return user, nil
}

// GetByEmail also returns the stored password hash, for login.
func (r *User) GetByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	query := `SELECT ` + userColumns + `, password_hash FROM users WHERE email = $1`

	var u domain.User
	var hash string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.IsActive, &u.IsSuperuser, &u.TeamID, &u.CreatedAt, &hash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("query user by email: %w", err)
	}

	return &u, hash, nil
}

// GetByIDs returns users in the order of the given ids; missing ids are
// simply absent, the caller compares counts.
func (r *User) GetByIDs(ctx context.Context, userIDs []int64) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		JOIN unnest($1::bigint[]) WITH ORDINALITY AS req(id, ord) USING (id)
		ORDER BY req.ord`

	rows, err := r.db.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("query users by ids: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return users, nil
}

func (r *User) ListByTeam(ctx context.Context, teamID int64, offset, limit int) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE team_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, teamID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("query team members: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return users, nil
}

// AssignTeam sets the user's team only if it is still unset. The
// conditional update is what makes join-team race-free: two concurrent
// joins cannot both see team_id IS NULL and both win.
func (r *User) AssignTeam(ctx context.Context, userID, teamID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET team_id = $1 WHERE id = $2 AND team_id IS NULL`,
		teamID, userID,
	)
	if err != nil {
		return fmt.Errorf("assign team: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var current *int64
		err := r.db.QueryRow(ctx, `SELECT team_id FROM users WHERE id = $1`, userID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("query user team: %w", err)
		}
		return domain.ErrAlreadyInTeam
	}

	return nil
}

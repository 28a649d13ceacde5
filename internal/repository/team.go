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

type Team struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

func NewTeamRepo(db *pgxpool.Pool, logger *logger.Logger) *Team {
	return &Team{
		db:     db,
		logger: logger.Component("repository/postgres"),
	}
}

const teamColumns = `id, name, team_code, creator_id, created_at`

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var t domain.Team
	err := row.Scan(&t.ID, &t.Name, &t.TeamCode, &t.CreatorID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts the team, relying on the unique constraints to report
// duplicate names and code collisions (the service retries codes).
func (r *Team) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	query := `
		INSERT INTO teams (name, team_code, creator_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING ` + teamColumns

	created, err := scanTeam(r.db.QueryRow(ctx, query, team.Name, team.TeamCode, team.CreatorID))
	if err != nil {
		if isUniqueViolation(err, "teams_name_key") {
			return nil, domain.ErrTeamExists
		}
		if isUniqueViolation(err, "teams_team_code_key") {
			return nil, domain.ErrTeamCodeTaken
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}

	return created, nil
}

func (r *Team) GetByID(ctx context.Context, teamID int64) (*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	team, err := scanTeam(r.db.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("query team: %w", err)
	}

	return team, nil
}

func (r *Team) GetByCode(ctx context.Context, code string) (*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE team_code = $1`

	team, err := scanTeam(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("query team by code: %w", err)
	}

	return team, nil
}

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

type Meeting struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

func NewMeetingRepo(db *pgxpool.Pool, logger *logger.Logger) *Meeting {
	return &Meeting{
		db:     db,
		logger: logger.Component("repository/postgres"),
	}
}

const meetingColumns = `id, title, description, start_time, end_time, team_id, created_at`

func scanMeeting(row pgx.Row) (*domain.Meeting, error) {
	var m domain.Meeting
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.StartTime, &m.EndTime, &m.TeamID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateWithParticipants runs the overlap check and the booking as one
// transaction. Participant user rows are locked first, in ascending id
// order so concurrent bookings over intersecting participant sets
// serialize instead of deadlocking. With the rows locked, no competing
// booking for any of these participants can slip between the check and
// the insert.
func (r *Meeting) CreateWithParticipants(ctx context.Context, meeting *domain.Meeting, participants []*domain.User) (*domain.Meeting, error) {
	ids := make([]int64, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}

	var created *domain.Meeting
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT id FROM users WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
		if err != nil {
			return fmt.Errorf("lock participants: %w", err)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("lock participants: %w", err)
		}

		// check each participant in request order so the reported
		// conflict is deterministic
		for _, p := range participants {
			var conflictID int64
			err := tx.QueryRow(ctx, `
				SELECT m.id
				FROM meetings m
				JOIN meeting_participants mp ON mp.meeting_id = m.id
				WHERE mp.user_id = $1
				  AND m.start_time < $3
				  AND m.end_time > $2
				LIMIT 1`,
				p.ID, meeting.StartTime, meeting.EndTime,
			).Scan(&conflictID)
			if err == nil {
				return &domain.OverlapError{UserID: p.ID, Email: p.Email}
			}
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("check overlap for user %d: %w", p.ID, err)
			}
		}

		created, err = scanMeeting(tx.QueryRow(ctx, `
			INSERT INTO meetings (title, description, start_time, end_time, team_id, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			RETURNING `+meetingColumns,
			meeting.Title, meeting.Description, meeting.StartTime, meeting.EndTime, meeting.TeamID,
		))
		if err != nil {
			return fmt.Errorf("insert meeting: %w", err)
		}

		for _, p := range participants {
			_, err := tx.Exec(ctx,
				`INSERT INTO meeting_participants (meeting_id, user_id) VALUES ($1, $2)`,
				created.ID, p.ID,
			)
			if err != nil {
				return fmt.Errorf("insert participant %d: %w", p.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *Meeting) GetByID(ctx context.Context, meetingID int64) (*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`

	meeting, err := scanMeeting(r.db.QueryRow(ctx, query, meetingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("query meeting: %w", err)
	}

	return meeting, nil
}

func (r *Meeting) ListByParticipant(ctx context.Context, userID int64) ([]*domain.Meeting, error) {
	query := `
		SELECT ` + qualifiedMeetingColumns + `
		FROM meetings m
		JOIN meeting_participants mp ON mp.meeting_id = m.id
		WHERE mp.user_id = $1
		ORDER BY m.start_time`

	return r.queryMeetings(ctx, query, userID)
}

func (r *Meeting) ListByParticipantBetween(ctx context.Context, userID int64, from, to time.Time) ([]*domain.Meeting, error) {
	query := `
		SELECT ` + qualifiedMeetingColumns + `
		FROM meetings m
		JOIN meeting_participants mp ON mp.meeting_id = m.id
		WHERE mp.user_id = $1 AND m.start_time >= $2 AND m.start_time < $3
		ORDER BY m.start_time`

	return r.queryMeetings(ctx, query, userID, from, to)
}

const qualifiedMeetingColumns = `m.id, m.title, m.description, m.start_time, m.end_time, m.team_id, m.created_at`

func (r *Meeting) queryMeetings(ctx context.Context, query string, args ...any) ([]*domain.Meeting, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query meetings: %w", err)
	}
	defer rows.Close()

	meetings := make([]*domain.Meeting, 0)
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return meetings, nil
}

// Delete removes the meeting; participations go with it via cascade.
func (r *Meeting) Delete(ctx context.Context, meetingID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, meetingID)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMeetingNotFound
	}
	return nil
}

// withTx executes fn in a transaction, rolling back on error.
func (r *Meeting) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.Error("failed to rollback transaction",
					"error", rbErr,
					"original_error", err,
				)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

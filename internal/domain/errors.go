package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrUnauthenticated = errors.New("authentication required")
	ErrUserInactive    = errors.New("user is inactive")
	ErrForbidden       = errors.New("insufficient permissions")

	ErrEmailExists  = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")

	ErrTeamExists    = errors.New("team already exists")
	ErrTeamNotFound  = errors.New("team not found")
	ErrTeamCodeTaken = errors.New("team code already taken")
	ErrAlreadyInTeam = errors.New("already in a team")
	ErrNotInTeam     = errors.New("not in a team")

	ErrTaskNotFound     = errors.New("task not found")
	ErrAssigneeNotFound = errors.New("assignee not found or not in team")

	ErrMeetingNotFound       = errors.New("meeting not found")
	ErrInvalidInterval       = errors.New("meeting must start before it ends")
	ErrParticipantNotFound   = errors.New("one or more participants not found")
	ErrParticipantsNotInTeam = errors.New("participants must share a team")
	ErrMeetingOverlap        = errors.New("participant has an overlapping meeting")

	ErrInvalidScore     = errors.New("score must be between 1 and 5")
	ErrInvalidPeriod    = errors.New("period must be 'week' or 'month'")
	ErrTaskNotDone      = errors.New("only completed tasks can be evaluated")
	ErrAlreadyEvaluated = errors.New("task already evaluated")

	ErrInvalidCredentials = errors.New("invalid email or password")
)

// OverlapError identifies the first participant whose calendar collides
// with a proposed meeting. Unwraps to ErrMeetingOverlap.
type OverlapError struct {
	UserID int64
	Email  string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("participant %s has an overlapping meeting", e.Email)
}

func (e *OverlapError) Unwrap() error { return ErrMeetingOverlap }

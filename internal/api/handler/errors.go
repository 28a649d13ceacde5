package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
)

type ErrorCode string

const (
	CodeValidation          ErrorCode = "VALIDATION_ERROR"
	CodeInvalidScore        ErrorCode = "INVALID_SCORE"
	CodeInvalidPeriod       ErrorCode = "INVALID_PERIOD"
	CodeInvalidInterval     ErrorCode = "INVALID_INTERVAL"
	CodeNotInTeam           ErrorCode = "NOT_IN_TEAM"
	CodeAssigneeNotInTeam   ErrorCode = "ASSIGNEE_NOT_IN_TEAM"
	CodeParticipantNotFound ErrorCode = "PARTICIPANT_NOT_FOUND"
	CodeParticipantsNotTeam ErrorCode = "PARTICIPANTS_NOT_IN_TEAM"
	CodeUnauthenticated     ErrorCode = "UNAUTHENTICATED"
	CodeInvalidCredentials  ErrorCode = "INVALID_CREDENTIALS"
	CodeForbidden           ErrorCode = "FORBIDDEN"
	CodeUserInactive        ErrorCode = "USER_INACTIVE"
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeTeamExists          ErrorCode = "TEAM_EXISTS"
	CodeEmailExists         ErrorCode = "EMAIL_EXISTS"
	CodeAlreadyInTeam       ErrorCode = "ALREADY_IN_TEAM"
	CodeAlreadyEvaluated    ErrorCode = "ALREADY_EVALUATED"
	CodeTaskNotDone         ErrorCode = "TASK_NOT_COMPLETED"
	CodeMeetingOverlap      ErrorCode = "MEETING_OVERLAP"
	CodeInternal            ErrorCode = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func WriteError(w http.ResponseWriter, err error, logger *logger.Logger) {
	status, response := mapError(err)

	if response.Error.Code == CodeInternal {
		logger.Error("unexpected error", "error", err.Error())
	} else {
		logger.Warn("domain error",
			"error", err.Error(),
			"code", response.Error.Code,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

// mapError translates domain sentinels into the transport error
// envelope. Conflicts surfaced by constraint violations map to the same
// codes as their pre-checks, so callers cannot tell a lost race apart.
func mapError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorResponse(CodeValidation, err)
	case errors.Is(err, domain.ErrInvalidScore):
		return http.StatusBadRequest, errorResponse(CodeInvalidScore, err)
	case errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest, errorResponse(CodeInvalidPeriod, err)
	case errors.Is(err, domain.ErrInvalidInterval):
		return http.StatusBadRequest, errorResponse(CodeInvalidInterval, err)
	case errors.Is(err, domain.ErrNotInTeam):
		return http.StatusBadRequest, errorResponse(CodeNotInTeam, err)
	case errors.Is(err, domain.ErrAssigneeNotFound):
		return http.StatusBadRequest, errorResponse(CodeAssigneeNotInTeam, err)
	case errors.Is(err, domain.ErrParticipantNotFound):
		return http.StatusBadRequest, errorResponse(CodeParticipantNotFound, err)
	case errors.Is(err, domain.ErrParticipantsNotInTeam):
		return http.StatusBadRequest, errorResponse(CodeParticipantsNotTeam, err)
	case errors.Is(err, domain.ErrTaskNotDone):
		return http.StatusBadRequest, errorResponse(CodeTaskNotDone, err)

	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse(CodeUnauthenticated, err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse(CodeInvalidCredentials, err)

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse(CodeForbidden, err)
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, errorResponse(CodeUserInactive, err)

	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMeetingNotFound):
		return http.StatusNotFound, errorResponse(CodeNotFound, err)

	case errors.Is(err, domain.ErrTeamExists):
		return http.StatusConflict, errorResponse(CodeTeamExists, err)
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, errorResponse(CodeEmailExists, err)
	case errors.Is(err, domain.ErrAlreadyInTeam):
		return http.StatusConflict, errorResponse(CodeAlreadyInTeam, err)
	case errors.Is(err, domain.ErrAlreadyEvaluated):
		return http.StatusConflict, errorResponse(CodeAlreadyEvaluated, err)
	case errors.Is(err, domain.ErrMeetingOverlap):
		return http.StatusConflict, errorResponse(CodeMeetingOverlap, err)

	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    CodeInternal,
				Message: "internal server error",
			},
		}
	}
}

func errorResponse(code ErrorCode, err error) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	}
}

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

type MeetingService struct {
	meetingRepo repository.MeetingRepository
	userRepo    repository.UserRepository
	teamRepo    repository.TeamRepository
	logger      *logger.Logger
}

func NewMeetingService(
	meetingRepo repository.MeetingRepository,
	userRepo repository.UserRepository,
	teamRepo repository.TeamRepository,
	logger *logger.Logger,
) *MeetingService {
	return &MeetingService{
		meetingRepo: meetingRepo,
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		logger:      logger.Component("service/meeting"),
	}
}

type CreateMeetingInput struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	ParticipantIDs []int64   `json:"participant_ids"`
}

func (in *CreateMeetingInput) validate() error {
	return ValidateStruct(in,
		Field(&in.Title, Required, Length(1, 255)),
		Field(&in.Description, Length(0, 10000)),
		Field(&in.ParticipantIDs, Required, Length(1, 0)),
	)
}

// CreateMeeting books a meeting for the whole participant set or not at
// all. Validation happens here; the atomic overlap-check-plus-insert
// lives in the repository transaction, so two concurrent bookings over
// a shared participant cannot both commit.
func (s *MeetingService) CreateMeeting(ctx context.Context, identity *domain.Identity, in *CreateMeetingInput) (*domain.Meeting, error) {
	if err := domain.Decide(identity, domain.RequireManagerOrAbove, domain.Scope{}); err != nil {
		return nil, err
	}
	if identity.TeamID == nil {
		return nil, domain.ErrNotInTeam
	}

	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if !in.StartTime.Before(in.EndTime) {
		return nil, domain.ErrInvalidInterval
	}

	ids := dedupe(in.ParticipantIDs)

	participants, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve participants: %w", err)
	}
	if len(participants) != len(ids) {
		return nil, domain.ErrParticipantNotFound
	}

	for _, p := range participants {
		if p.TeamID == nil || *p.TeamID != *identity.TeamID {
			return nil, domain.ErrParticipantsNotInTeam
		}
	}

	meeting := &domain.Meeting{
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		TeamID:      *identity.TeamID,
	}

	created, err := s.meetingRepo.CreateWithParticipants(ctx, meeting, participants)
	if err != nil {
		var overlap *domain.OverlapError
		if errors.As(err, &overlap) {
			s.logger.Warn("meeting rejected, participant double-booked",
				"participant_id", overlap.UserID,
				"start", in.StartTime,
				"end", in.EndTime,
			)
			return nil, err
		}
		return nil, fmt.Errorf("create meeting: %w", err)
	}

	s.logger.Info("meeting created",
		"meeting_id", created.ID,
		"team_id", created.TeamID,
		"participants", len(participants),
	)

	return created, nil
}

func (s *MeetingService) ListMeetings(ctx context.Context, identity *domain.Identity) ([]*domain.Meeting, error) {
	meetings, err := s.meetingRepo.ListByParticipant(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}

	return meetings, nil
}

// DeleteMeeting is allowed to the creator of the meeting's team and to
// admins.
func (s *MeetingService) DeleteMeeting(ctx context.Context, identity *domain.Identity, meetingID int64) error {
	meeting, err := s.meetingRepo.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			return err
		}
		return fmt.Errorf("get meeting: %w", err)
	}

	team, err := s.teamRepo.GetByID(ctx, meeting.TeamID)
	if err != nil {
		return fmt.Errorf("get meeting team: %w", err)
	}

	if identity.UserID != team.CreatorID && identity.Role != domain.RoleAdmin && !identity.IsSuperuser {
		return domain.ErrForbidden
	}

	if err := s.meetingRepo.Delete(ctx, meetingID); err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}

	s.logger.Info("meeting deleted",
		"meeting_id", meetingID,
		"deleted_by", identity.UserID,
	)

	return nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

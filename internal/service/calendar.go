package service

import (
	"context"
	"fmt"
	"time"

	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/repository"
)

type CalendarService struct {
	taskRepo    repository.TaskRepository
	meetingRepo repository.MeetingRepository
	logger      *logger.Logger
}

func NewCalendarService(
	taskRepo repository.TaskRepository,
	meetingRepo repository.MeetingRepository,
	logger *logger.Logger,
) *CalendarService {
	return &CalendarService{
		taskRepo:    taskRepo,
		meetingRepo: meetingRepo,
		logger:      logger.Component("service/calendar"),
	}
}

type DaySchedule struct {
	Date     string            `json:"date"`
	Tasks    []*domain.Task    `json:"tasks"`
	Meetings []*domain.Meeting `json:"meetings"`
}

// Day aggregates the caller's deadlines and meetings for one day. Pure
// date filtering, no business rules.
func (s *CalendarService) Day(ctx context.Context, identity *domain.Identity, date time.Time) (*DaySchedule, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	tasks, err := s.taskRepo.ListByAssigneeDeadline(ctx, identity.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list day tasks: %w", err)
	}

	meetings, err := s.meetingRepo.ListByParticipantBetween(ctx, identity.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list day meetings: %w", err)
	}

	return &DaySchedule{
		Date:     start.Format(time.DateOnly),
		Tasks:    tasks,
		Meetings: meetings,
	}, nil
}

type MonthSchedule struct {
	Year  int                     `json:"year"`
	Month int                     `json:"month"`
	Days  map[string]*DaySchedule `json:"calendar"`
}

// Month returns the caller's schedule grouped per day; every day of the
// month is present even when empty.
func (s *CalendarService) Month(ctx context.Context, identity *domain.Identity, month, year int) (*MonthSchedule, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month out of range", domain.ErrValidation)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	tasks, err := s.taskRepo.ListByAssigneeDeadline(ctx, identity.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list month tasks: %w", err)
	}

	meetings, err := s.meetingRepo.ListByParticipantBetween(ctx, identity.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list month meetings: %w", err)
	}

	days := make(map[string]*DaySchedule)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		days[key] = &DaySchedule{
			Date:     key,
			Tasks:    make([]*domain.Task, 0),
			Meetings: make([]*domain.Meeting, 0),
		}
	}

	for _, t := range tasks {
		if t.Deadline == nil {
			continue
		}
		if day, ok := days[t.Deadline.Format(time.DateOnly)]; ok {
			day.Tasks = append(day.Tasks, t)
		}
	}

	for _, m := range meetings {
		if day, ok := days[m.StartTime.Format(time.DateOnly)]; ok {
			day.Meetings = append(day.Meetings, m)
		}
	}

	return &MonthSchedule{Year: year, Month: month, Days: days}, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamly/teamly/internal/domain"
)

func newCalendarService(tasks *taskRepoMock, meetings *meetingRepoMock) *CalendarService {
	return NewCalendarService(tasks, meetings, testLogger())
}

func TestCalendarDay(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	deadline := dayStart.Add(17 * time.Hour)
	task := &domain.Task{ID: 100, Deadline: &deadline, TeamID: 10}
	meeting := &domain.Meeting{ID: 50, StartTime: dayStart.Add(10 * time.Hour), EndTime: dayStart.Add(11 * time.Hour), TeamID: 10}

	tasks := &taskRepoMock{}
	tasks.On("ListByAssigneeDeadline", ctx, int64(2), dayStart, dayEnd).
		Return([]*domain.Task{task}, nil)
	meetings := &meetingRepoMock{}
	meetings.On("ListByParticipantBetween", ctx, int64(2), dayStart, dayEnd).
		Return([]*domain.Meeting{meeting}, nil)

	svc := newCalendarService(tasks, meetings)

	day, err := svc.Day(ctx, memberIdentity(2, 10), date)
	require.NoError(t, err)
	require.Equal(t, "2026-09-01", day.Date)
	require.Len(t, day.Tasks, 1)
	require.Len(t, day.Meetings, 1)
	tasks.AssertExpectations(t)
	meetings.AssertExpectations(t)
}

func TestCalendarMonth(t *testing.T) {
	ctx := context.Background()
	monthStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	deadline := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	noDeadlineTask := &domain.Task{ID: 101, TeamID: 10}
	task := &domain.Task{ID: 100, Deadline: &deadline, TeamID: 10}
	meeting := &domain.Meeting{
		ID:        50,
		StartTime: time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 3, 11, 0, 0, 0, time.UTC),
		TeamID:    10,
	}

	tasks := &taskRepoMock{}
	tasks.On("ListByAssigneeDeadline", ctx, int64(2), monthStart, monthEnd).
		Return([]*domain.Task{task, noDeadlineTask}, nil)
	meetings := &meetingRepoMock{}
	meetings.On("ListByParticipantBetween", ctx, int64(2), monthStart, monthEnd).
		Return([]*domain.Meeting{meeting}, nil)

	svc := newCalendarService(tasks, meetings)

	month, err := svc.Month(ctx, memberIdentity(2, 10), 9, 2026)
	require.NoError(t, err)
	require.Equal(t, 2026, month.Year)
	require.Equal(t, 9, month.Month)

	// every day of september present, empty days included
	require.Len(t, month.Days, 30)
	require.Len(t, month.Days["2026-09-15"].Tasks, 1)
	require.Len(t, month.Days["2026-09-03"].Meetings, 1)
	require.Empty(t, month.Days["2026-09-20"].Tasks)
	require.Empty(t, month.Days["2026-09-20"].Meetings)
}

func TestCalendarMonthValidation(t *testing.T) {
	svc := newCalendarService(&taskRepoMock{}, &meetingRepoMock{})

	for _, month := range []int{0, 13, -1} {
		_, err := svc.Month(context.Background(), memberIdentity(2, 10), month, 2026)
		require.ErrorIs(t, err, domain.ErrValidation, "month %d", month)
	}
}

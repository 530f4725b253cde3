package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/google/uuid"
)

// TestOwner is the owner fixtures use unless told otherwise.
const TestOwner domain.Owner = "tester"

var activityCounter atomic.Int64

// Activity options
type ActivityOption func(*domain.Activity)

func WithActivityID(id string) ActivityOption {
	return func(a *domain.Activity) { a.ID = id }
}

func WithType(t domain.ActivityType) ActivityOption {
	return func(a *domain.Activity) { a.Type = t }
}

func WithPhases(phases ...domain.Phase) ActivityOption {
	return func(a *domain.Activity) { a.Phases = phases }
}

func WithDuration(minutes int) ActivityOption {
	return func(a *domain.Activity) { a.DurationMinutes = minutes }
}

func WithBenefits(b ...string) ActivityOption {
	return func(a *domain.Activity) { a.Benefits = b }
}

// NewTestActivity builds a wellbeing activity tagged with every phase.
func NewTestActivity(name string, opts ...ActivityOption) *domain.Activity {
	a := &domain.Activity{
		ID:              fmt.Sprintf("act-%03d", activityCounter.Add(1)),
		Name:            name,
		Type:            domain.ActivityWellbeing,
		Phases:          domain.AllPhases(),
		DurationMinutes: 30,
		Description:     name + " for testing",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CycleSettings options
type SettingsOption func(*domain.CycleSettings)

func WithCycleLength(days int) SettingsOption {
	return func(s *domain.CycleSettings) { s.CycleLengthDays = days }
}

func WithPeriodLength(days int) SettingsOption {
	return func(s *domain.CycleSettings) { s.PeriodLengthDays = days }
}

func WithSettingsOwner(o domain.Owner) SettingsOption {
	return func(s *domain.CycleSettings) { s.Owner = o }
}

// NewTestSettings builds a 28/5 cycle whose last period began on lastStart.
func NewTestSettings(lastStart time.Time, opts ...SettingsOption) *domain.CycleSettings {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.CycleSettings{
		ID:               uuid.New().String(),
		Owner:            TestOwner,
		CycleLengthDays:  domain.DefaultCycleLengthDays,
		PeriodLengthDays: domain.DefaultPeriodLengthDays,
		LastPeriodStart:  domain.DateOf(lastStart),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScheduledActivity options
type ScheduledOption func(*domain.ScheduledActivity)

func WithDay(day int) ScheduledOption {
	return func(s *domain.ScheduledActivity) { s.DayOfWeek = day }
}

func WithSlot(start, end string) ScheduledOption {
	return func(s *domain.ScheduledActivity) {
		s.StartTime = domain.MustClock(start)
		s.EndTime = domain.MustClock(end)
	}
}

func WithCompleted() ScheduledOption {
	return func(s *domain.ScheduledActivity) { s.IsCompleted = true }
}

func WithScheduledOwner(o domain.Owner) ScheduledOption {
	return func(s *domain.ScheduledActivity) { s.Owner = o }
}

// NewTestScheduled places activityID on the first day of the week at 07:00.
func NewTestScheduled(activityID string, weekStart time.Time, opts ...ScheduledOption) *domain.ScheduledActivity {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.ScheduledActivity{
		ID:         uuid.New().String(),
		Owner:      TestOwner,
		ActivityID: activityID,
		WeekStart:  domain.DateOf(weekStart),
		StartTime:  domain.MustClock("07:00"),
		EndTime:    domain.MustClock("08:00"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTestUserActivity marks activityID active for TestOwner.
func NewTestUserActivity(activityID string, favorite bool) *domain.UserActivity {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.UserActivity{
		ID:         uuid.New().String(),
		Owner:      TestOwner,
		ActivityID: activityID,
		IsActive:   true,
		IsFavorite: favorite,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Date parses a YYYY-MM-DD literal and panics on malformed input.
func Date(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

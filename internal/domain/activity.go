package domain

import "time"

// DefaultActivityMinutes applies when a catalog entry has no duration.
const DefaultActivityMinutes = 60

// Activity is a read-only catalog entry.
type Activity struct {
	ID              string
	Name            string
	Type            ActivityType
	Phases          []Phase
	DurationMinutes int
	Description     string
	Emoji           string
	ArticleURL      string
	Benefits        []string
}

func (a *Activity) HasPhase(p Phase) bool {
	for _, ph := range a.Phases {
		if ph == p {
			return true
		}
	}
	return false
}

func (a *Activity) EffectiveDuration() int {
	if a.DurationMinutes > 0 {
		return a.DurationMinutes
	}
	return DefaultActivityMinutes
}

// DisplayEmoji prefers the entry's own emoji over its type's.
func (a *Activity) DisplayEmoji() string {
	return CoalesceStr(a.Emoji, a.Type.Emoji())
}

// UserActivity records an owner's choice about a catalog entry.
// Deactivation is a flag flip; rows are never required to be deleted.
type UserActivity struct {
	ID         string
	Owner      Owner
	ActivityID string
	IsActive   bool
	IsFavorite bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ScheduledActivity places an activity in a week-aligned timetable.
type ScheduledActivity struct {
	ID          string
	Owner       Owner
	ActivityID  string
	WeekStart   time.Time
	DayOfWeek   int // 0..6 offset from WeekStart
	StartTime   Clock
	EndTime     Clock
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Date returns the calendar date the entry falls on.
func (s *ScheduledActivity) Date() time.Time {
	return DateOf(s.WeekStart).AddDate(0, 0, s.DayOfWeek)
}

// ValidDayOfWeek reports whether d is a day offset inside a week.
func ValidDayOfWeek(d int) bool {
	return d >= 0 && d <= 6
}

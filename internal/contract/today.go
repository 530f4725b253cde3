package contract

import (
	"time"

	"github.com/alexanderramin/cyclesync/internal/domain"
)

// RecommendationLimit caps the activities suggested for the current phase.
const RecommendationLimit = 4

// AgendaItem is a scheduled entry joined with its catalog activity.
// Activity is nil when the entry points at an activity no longer in the
// catalog.
type AgendaItem struct {
	Entry    *domain.ScheduledActivity
	Activity *domain.Activity
}

func (a AgendaItem) Name() string {
	if a.Activity == nil {
		return a.Entry.ActivityID
	}
	return a.Activity.Name
}

type TodayResponse struct {
	Date            time.Time
	Info            domain.PhaseInfo
	Recommendations []*domain.Activity
	Agenda          []AgendaItem
}

// CalendarResponse colours a week by phase.
type CalendarResponse struct {
	WeekStart  time.Time
	Configured bool
	Bands      string
	Days       []CalendarDay
}

type CalendarDay struct {
	Date      time.Time
	DayOfWeek int
	Phase     domain.Phase
	CycleDay  int
	Scheduled int
}

// OwnedActivity is a catalog entry with the owner's choice about it.
type OwnedActivity struct {
	Activity *domain.Activity
	Choice   *domain.UserActivity
}

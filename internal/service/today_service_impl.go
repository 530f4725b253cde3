package service

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/cycle"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/repository"
)

type todayService struct {
	activities repository.ActivityRepo
	settings   repository.CycleSettingsRepo
	schedules  repository.ScheduledActivityRepo
	calc       *cycle.Calculator
}

func NewTodayService(
	activities repository.ActivityRepo,
	settings repository.CycleSettingsRepo,
	schedules repository.ScheduledActivityRepo,
	calc *cycle.Calculator,
) TodayService {
	return &todayService{
		activities: activities,
		settings:   settings,
		schedules:  schedules,
		calc:       calculatorOrDefault(calc),
	}
}

// Today gathers the home view: phase info, a few activities suited to the
// phase, and the day's agenda ordered by start time.
func (s *todayService) Today(ctx context.Context, owner domain.Owner, now time.Time) (*contract.TodayResponse, error) {
	settings, err := loadSettings(ctx, s.settings, owner)
	if err != nil {
		return nil, err
	}
	info := s.calc.ComputeCycleInfo(settings, now)

	catalog, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	recs := filterByPhase(catalog, info.Phase)
	if len(recs) > contract.RecommendationLimit {
		recs = recs[:contract.RecommendationLimit]
	}

	weekStart := domain.WeekStartOf(now)
	day := domain.DaysBetween(weekStart, now)
	week, err := s.schedules.ListByWeek(ctx, owner, weekStart)
	if err != nil {
		return nil, err
	}
	var todays []*domain.ScheduledActivity
	for _, e := range week {
		if e.DayOfWeek == day {
			todays = append(todays, e)
		}
	}
	sort.SliceStable(todays, func(i, j int) bool { return todays[i].StartTime < todays[j].StartTime })

	byID := indexActivities(catalog)
	agenda := make([]contract.AgendaItem, 0, len(todays))
	for _, e := range todays {
		agenda = append(agenda, contract.AgendaItem{Entry: e, Activity: byID[e.ActivityID]})
	}

	return &contract.TodayResponse{
		Date:            domain.DateOf(now),
		Info:            info,
		Recommendations: recs,
		Agenda:          agenda,
	}, nil
}

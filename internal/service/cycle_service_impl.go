package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/cycle"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/repository"
	"github.com/google/uuid"
)

type cycleService struct {
	settings  repository.CycleSettingsRepo
	schedules repository.ScheduledActivityRepo
	calc      *cycle.Calculator
	observer  UseCaseObserver
}

func NewCycleService(
	settings repository.CycleSettingsRepo,
	schedules repository.ScheduledActivityRepo,
	calc *cycle.Calculator,
	observers ...UseCaseObserver,
) CycleService {
	return &cycleService{
		settings:  settings,
		schedules: schedules,
		calc:      calculatorOrDefault(calc),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *cycleService) Get(ctx context.Context, owner domain.Owner) (*domain.CycleSettings, error) {
	return loadSettings(ctx, s.settings, owner)
}

// Save validates in and stores it as the owner's only settings row,
// creating the row on first use.
func (s *cycleService) Save(ctx context.Context, owner domain.Owner, in *domain.CycleSettings) (saved *domain.CycleSettings, err error) {
	fields := map[string]any{"owner": string(owner)}
	defer observe(ctx, s.observer, "save-cycle-settings", fields)(&err)

	if err = in.Validate(); err != nil {
		return nil, err
	}

	existing, err := loadSettings(ctx, s.settings, owner)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	out := &domain.CycleSettings{
		ID:               uuid.New().String(),
		Owner:            owner,
		CycleLengthDays:  in.CycleLengthDays,
		PeriodLengthDays: in.PeriodLengthDays,
		LastPeriodStart:  domain.DateOf(in.LastPeriodStart),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	fields["created"] = existing == nil
	if existing != nil {
		out.ID = existing.ID
		out.CreatedAt = existing.CreatedAt
	}

	if err = s.settings.Upsert(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *cycleService) Info(ctx context.Context, owner domain.Owner, ref time.Time) (domain.PhaseInfo, error) {
	settings, err := loadSettings(ctx, s.settings, owner)
	if err != nil {
		return domain.PhaseInfo{}, err
	}
	return s.calc.ComputeCycleInfo(settings, ref), nil
}

// Calendar projects the phase of each day of the week starting at
// weekStart, using the named band policy ("" keeps the service default).
func (s *cycleService) Calendar(ctx context.Context, owner domain.Owner, weekStart time.Time, bands string) (*contract.CalendarResponse, error) {
	calc := s.calc
	if bands != "" {
		policy := cycle.BandPolicyByName(bands)
		if policy == nil {
			return nil, fmt.Errorf("unknown band policy %q (expected fixed or proportional)", bands)
		}
		calc = &cycle.Calculator{Bands: policy}
	}

	settings, err := loadSettings(ctx, s.settings, owner)
	if err != nil {
		return nil, err
	}
	week := domain.WeekStartOf(weekStart)
	entries, err := s.schedules.ListByWeek(ctx, owner, week)
	if err != nil {
		return nil, err
	}
	perDay := make(map[int]int, 7)
	for _, e := range entries {
		perDay[e.DayOfWeek]++
	}

	resp := &contract.CalendarResponse{
		WeekStart:  week,
		Configured: settings.Configured(),
		Bands:      bands,
	}
	if resp.Bands == "" {
		resp.Bands = "fixed"
	}
	for _, d := range calc.ProjectWeek(settings, week) {
		resp.Days = append(resp.Days, contract.CalendarDay{
			Date:      d.Date,
			DayOfWeek: d.DayOfWeek,
			Phase:     d.Phase,
			CycleDay:  d.CycleDay,
			Scheduled: perDay[d.DayOfWeek],
		})
	}
	return resp, nil
}

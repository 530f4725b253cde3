package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/cycle"
	"github.com/alexanderramin/cyclesync/internal/db"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/repository"
	"github.com/alexanderramin/cyclesync/internal/scheduler"
	"github.com/google/uuid"
)

type scheduleService struct {
	activities repository.ActivityRepo
	choices    repository.UserActivityRepo
	settings   repository.CycleSettingsRepo
	schedules  repository.ScheduledActivityRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewScheduleService(
	activities repository.ActivityRepo,
	choices repository.UserActivityRepo,
	settings repository.CycleSettingsRepo,
	schedules repository.ScheduledActivityRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		activities: activities,
		choices:    choices,
		settings:   settings,
		schedules:  schedules,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) Week(ctx context.Context, owner domain.Owner, weekStart time.Time) ([]contract.AgendaItem, error) {
	entries, err := s.schedules.ListByWeek(ctx, owner, weekStart)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, entries)
}

func (s *scheduleService) join(ctx context.Context, entries []*domain.ScheduledActivity) ([]contract.AgendaItem, error) {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ActivityID)
	}
	acts, err := s.activities.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := indexActivities(acts)

	items := make([]contract.AgendaItem, len(entries))
	for i, e := range entries {
		items[i] = contract.AgendaItem{Entry: e, Activity: byID[e.ActivityID]}
	}
	return items, nil
}

// Place puts an activity in a week by hand. The end time follows from the
// activity's duration.
func (s *scheduleService) Place(ctx context.Context, owner domain.Owner, activityID string, weekStart time.Time, day int, start domain.Clock) (*domain.ScheduledActivity, error) {
	if !domain.IsWeekStart(weekStart) {
		return nil, fmt.Errorf("week start %s is not a Sunday", weekStart.Format(domain.DateLayout))
	}
	if !domain.ValidDayOfWeek(day) {
		return nil, fmt.Errorf("day of week must be 0-6, got %d", day)
	}
	a, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	entry := &domain.ScheduledActivity{
		ID:         uuid.New().String(),
		Owner:      owner,
		ActivityID: a.ID,
		WeekStart:  weekStart,
		DayOfWeek:  day,
		StartTime:  start,
		EndTime:    start.AddMinutes(a.EffectiveDuration()),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.schedules.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Move shifts an entry to another day and start time, keeping its length.
func (s *scheduleService) Move(ctx context.Context, owner domain.Owner, id string, day int, start domain.Clock) (*domain.ScheduledActivity, error) {
	if !domain.ValidDayOfWeek(day) {
		return nil, fmt.Errorf("day of week must be 0-6, got %d", day)
	}
	entry, err := s.schedules.GetByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	length := (int(entry.EndTime) - int(entry.StartTime) + 24*60) % (24 * 60)
	entry.DayOfWeek = day
	entry.StartTime = start
	entry.EndTime = start.AddMinutes(length)
	if err := s.schedules.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *scheduleService) Remove(ctx context.Context, owner domain.Owner, id string) error {
	return s.schedules.Delete(ctx, owner, id)
}

func (s *scheduleService) SetCompleted(ctx context.Context, owner domain.Owner, id string, done bool) (*domain.ScheduledActivity, error) {
	entry, err := s.schedules.GetByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	entry.IsCompleted = done
	if err := s.schedules.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// AutoDraft replaces the week's entries with a fresh random plan. All
// deletes and creates happen in one transaction, so a failure leaves the
// week as it was.
func (s *scheduleService) AutoDraft(ctx context.Context, req contract.AutoDraftRequest) (resp *contract.AutoDraftResponse, err error) {
	fields := map[string]any{
		"owner":   string(req.Owner),
		"dry_run": req.DryRun,
	}
	defer observe(ctx, s.observer, "auto-draft", fields)(&err)

	if req.WeekStart.IsZero() || !domain.IsWeekStart(req.WeekStart) {
		return nil, &contract.DraftError{
			Code:    contract.DraftErrInvalidWeek,
			Message: fmt.Sprintf("week start %s is not a Sunday", req.WeekStart.Format(domain.DateLayout)),
		}
	}
	fields["week"] = req.WeekStart.Format(domain.DateLayout)

	bands := cycle.BandPolicyByName(req.Bands)
	if bands == nil {
		return nil, fmt.Errorf("unknown band policy %q (expected fixed or proportional)", req.Bands)
	}

	active, settings, existing, err := s.loadDraftInputs(ctx, req.Owner, req.WeekStart)
	if err != nil {
		return nil, err
	}

	rng := scheduler.NewRand()
	if req.Seed != nil {
		rng = scheduler.NewSeededRand(*req.Seed)
	}
	plan := scheduler.DraftWeek(scheduler.DraftInput{
		Owner:            req.Owner,
		ActiveActivities: active,
		WeekStart:        req.WeekStart,
		Settings:         settings,
		Existing:         existing,
		Calculator:       &cycle.Calculator{Bands: bands},
		Rand:             rng,
		Slots:            scheduler.SlotStrategyFor(req.NoOverlap),
	})

	resp = &contract.AutoDraftResponse{
		WeekStart: plan.WeekStart,
		DryRun:    req.DryRun,
		Deleted:   len(plan.ToDelete),
		Created:   plan.ToCreate,
		Days:      plan.Days,
		Skipped:   len(active) == 0,
	}
	fields["active"] = len(active)
	fields["deleted"] = resp.Deleted
	fields["created"] = len(plan.ToCreate)

	if req.DryRun || plan.Empty() {
		return resp, nil
	}

	if err = s.apply(ctx, req.Owner, plan); err != nil {
		return nil, &contract.DraftError{Code: contract.DraftErrStoreFailure, Message: "applying draft", Err: err}
	}
	resp.Created = plan.ToCreate
	return resp, nil
}

func (s *scheduleService) loadDraftInputs(ctx context.Context, owner domain.Owner, weekStart time.Time) ([]*domain.Activity, *domain.CycleSettings, []*domain.ScheduledActivity, error) {
	choices, err := s.choices.ListActive(ctx, owner)
	if err != nil {
		return nil, nil, nil, storeFailure("loading active activities", err)
	}
	ids := make([]string, len(choices))
	for i, ua := range choices {
		ids[i] = ua.ActivityID
	}
	active, err := s.activities.ListByIDs(ctx, ids)
	if err != nil {
		return nil, nil, nil, storeFailure("loading activities", err)
	}

	settings, err := loadSettings(ctx, s.settings, owner)
	if err != nil {
		return nil, nil, nil, storeFailure("loading cycle settings", err)
	}
	if settings.Configured() {
		if verr := settings.Validate(); verr != nil {
			return nil, nil, nil, &contract.DraftError{
				Code:    contract.DraftErrDataIntegrity,
				Message: "stored cycle settings are invalid",
				Err:     verr,
			}
		}
	}

	existing, err := s.schedules.ListByWeek(ctx, owner, weekStart)
	if err != nil {
		return nil, nil, nil, storeFailure("loading week", err)
	}
	return active, settings, existing, nil
}

// apply runs every delete, then every create, in one transaction. Created
// entries get their ids and timestamps in place.
func (s *scheduleService) apply(ctx context.Context, owner domain.Owner, plan scheduler.DraftPlan) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteScheduledActivityRepo(tx)
		for _, id := range plan.ToDelete {
			if err := repo.Delete(ctx, owner, id); err != nil {
				return err
			}
		}
		now := time.Now().UTC().Truncate(time.Second)
		for i := range plan.ToCreate {
			e := &plan.ToCreate[i]
			e.ID = uuid.New().String()
			e.CreatedAt = now
			e.UpdatedAt = now
			if err := repo.Create(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

func storeFailure(msg string, err error) error {
	return &contract.DraftError{Code: contract.DraftErrStoreFailure, Message: msg, Err: err}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/cycle"
	"github.com/alexanderramin/cyclesync/internal/db"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/repository"
	"github.com/google/uuid"
)

type activityService struct {
	activities repository.ActivityRepo
	choices    repository.UserActivityRepo
	settings   repository.CycleSettingsRepo
	uow        db.UnitOfWork
	calc       *cycle.Calculator
	observer   UseCaseObserver
}

func NewActivityService(
	activities repository.ActivityRepo,
	choices repository.UserActivityRepo,
	settings repository.CycleSettingsRepo,
	uow db.UnitOfWork,
	calc *cycle.Calculator,
	observers ...UseCaseObserver,
) ActivityService {
	return &activityService{
		activities: activities,
		choices:    choices,
		settings:   settings,
		uow:        uow,
		calc:       calculatorOrDefault(calc),
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *activityService) Catalog(ctx context.Context) ([]*domain.Activity, error) {
	return s.activities.List(ctx)
}

func (s *activityService) Get(ctx context.Context, id string) (*domain.Activity, error) {
	return s.activities.GetByID(ctx, id)
}

// Discover lists catalog entries the owner has not activated yet, entries
// for the owner's current phase first.
func (s *activityService) Discover(ctx context.Context, owner domain.Owner, phase *domain.Phase, ref time.Time) ([]*domain.Activity, error) {
	all, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.choices.ListActive(ctx, owner)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(active))
	for _, ua := range active {
		taken[ua.ActivityID] = true
	}

	out := make([]*domain.Activity, 0, len(all))
	for _, a := range all {
		if taken[a.ID] {
			continue
		}
		if phase != nil && !a.HasPhase(*phase) {
			continue
		}
		out = append(out, a)
	}

	current, err := currentPhase(ctx, s.settings, s.calc, owner, ref)
	if err != nil {
		return nil, err
	}
	sortPhaseFirst(out, current)
	return out, nil
}

// Mine returns the owner's active activities, favourites first.
func (s *activityService) Mine(ctx context.Context, owner domain.Owner) ([]contract.OwnedActivity, error) {
	active, err := s.choices.ListActive(ctx, owner)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(active))
	for i, ua := range active {
		ids[i] = ua.ActivityID
	}
	acts, err := s.activities.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := indexActivities(acts)

	out := make([]contract.OwnedActivity, 0, len(active))
	for _, ua := range active {
		if a, ok := byID[ua.ActivityID]; ok {
			out = append(out, contract.OwnedActivity{Activity: a, Choice: ua})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Choice.IsFavorite && !out[j].Choice.IsFavorite
	})
	return out, nil
}

func (s *activityService) Accept(ctx context.Context, owner domain.Owner, activityID string) (ua *domain.UserActivity, err error) {
	defer observe(ctx, s.observer, "accept-activity", map[string]any{"owner": string(owner), "activity": activityID})(&err)

	return s.upsertChoice(ctx, owner, activityID,
		func(ua *domain.UserActivity) { ua.IsActive = true },
		func(ua *domain.UserActivity) { ua.IsActive = true },
	)
}

// ToggleFavorite flips the favourite flag. An activity the owner has never
// chosen becomes both active and favourite.
func (s *activityService) ToggleFavorite(ctx context.Context, owner domain.Owner, activityID string) (*domain.UserActivity, error) {
	return s.upsertChoice(ctx, owner, activityID,
		func(ua *domain.UserActivity) { ua.IsActive, ua.IsFavorite = true, true },
		func(ua *domain.UserActivity) { ua.IsFavorite = !ua.IsFavorite },
	)
}

func (s *activityService) Deactivate(ctx context.Context, owner domain.Owner, activityID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		choices := repository.NewSQLiteUserActivityRepo(tx)
		ua, err := choices.GetByActivity(ctx, owner, activityID)
		if err != nil {
			return err
		}
		ua.IsActive = false
		return choices.Update(ctx, ua)
	})
}

// upsertChoice applies onCreate to a fresh row when the owner has no row
// for the activity, onUpdate to the existing one otherwise.
func (s *activityService) upsertChoice(
	ctx context.Context,
	owner domain.Owner,
	activityID string,
	onCreate, onUpdate func(*domain.UserActivity),
) (*domain.UserActivity, error) {
	var result *domain.UserActivity
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteActivityRepo(tx).GetByID(ctx, activityID); err != nil {
			return err
		}
		choices := repository.NewSQLiteUserActivityRepo(tx)

		ua, err := choices.GetByActivity(ctx, owner, activityID)
		if errors.Is(err, repository.ErrNotFound) {
			now := time.Now().UTC().Truncate(time.Second)
			ua = &domain.UserActivity{
				ID:         uuid.New().String(),
				Owner:      owner,
				ActivityID: activityID,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			onCreate(ua)
			result = ua
			return choices.Create(ctx, ua)
		}
		if err != nil {
			return err
		}
		onUpdate(ua)
		result = ua
		return choices.Update(ctx, ua)
	})
	if err != nil {
		return nil, fmt.Errorf("updating choice for %s: %w", activityID, err)
	}
	return result, nil
}

// Search backs the activity picker: a case-insensitive name match plus
// optional type and phase filters, entries for the current phase first.
func (s *activityService) Search(ctx context.Context, owner domain.Owner, f SearchFilter) ([]*domain.Activity, error) {
	all, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]*domain.Activity, 0, len(all))
	for _, a := range all {
		if q != "" && !strings.Contains(strings.ToLower(a.Name), q) {
			continue
		}
		if f.Type != nil && a.Type != *f.Type {
			continue
		}
		if f.Phase != nil && !a.HasPhase(*f.Phase) {
			continue
		}
		out = append(out, a)
	}

	ref := f.Ref
	if ref.IsZero() {
		ref = time.Now()
	}
	current, err := currentPhase(ctx, s.settings, s.calc, owner, ref)
	if err != nil {
		return nil, err
	}
	sortPhaseFirst(out, current)
	return out, nil
}

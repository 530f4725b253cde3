package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/domain"
)

type CycleService interface {
	// Get returns nil settings and no error when the owner has none yet.
	Get(ctx context.Context, owner domain.Owner) (*domain.CycleSettings, error)
	Save(ctx context.Context, owner domain.Owner, s *domain.CycleSettings) (*domain.CycleSettings, error)
	Info(ctx context.Context, owner domain.Owner, ref time.Time) (domain.PhaseInfo, error)
	Calendar(ctx context.Context, owner domain.Owner, weekStart time.Time, bands string) (*contract.CalendarResponse, error)
}

// SearchFilter narrows the activity picker. Zero fields match everything.
type SearchFilter struct {
	Query string
	Type  *domain.ActivityType
	Phase *domain.Phase
	Ref   time.Time // date whose phase sorts first
}

type ActivityService interface {
	Catalog(ctx context.Context) ([]*domain.Activity, error)
	Get(ctx context.Context, id string) (*domain.Activity, error)
	Discover(ctx context.Context, owner domain.Owner, phase *domain.Phase, ref time.Time) ([]*domain.Activity, error)
	Mine(ctx context.Context, owner domain.Owner) ([]contract.OwnedActivity, error)
	Accept(ctx context.Context, owner domain.Owner, activityID string) (*domain.UserActivity, error)
	ToggleFavorite(ctx context.Context, owner domain.Owner, activityID string) (*domain.UserActivity, error)
	Deactivate(ctx context.Context, owner domain.Owner, activityID string) error
	Search(ctx context.Context, owner domain.Owner, f SearchFilter) ([]*domain.Activity, error)
}

type ScheduleService interface {
	Week(ctx context.Context, owner domain.Owner, weekStart time.Time) ([]contract.AgendaItem, error)
	Place(ctx context.Context, owner domain.Owner, activityID string, weekStart time.Time, day int, start domain.Clock) (*domain.ScheduledActivity, error)
	Move(ctx context.Context, owner domain.Owner, id string, day int, start domain.Clock) (*domain.ScheduledActivity, error)
	Remove(ctx context.Context, owner domain.Owner, id string) error
	SetCompleted(ctx context.Context, owner domain.Owner, id string, done bool) (*domain.ScheduledActivity, error)
	AutoDraft(ctx context.Context, req contract.AutoDraftRequest) (*contract.AutoDraftResponse, error)
}

type TodayService interface {
	Today(ctx context.Context, owner domain.Owner, now time.Time) (*contract.TodayResponse, error)
}

// ImportResult holds the outcome of a catalog import.
type ImportResult struct {
	Activities int
	Skipped    bool // default catalog not seeded because one already exists
}

type ImportService interface {
	ImportCatalog(ctx context.Context, path string) (*ImportResult, error)
	SeedDefaultCatalog(ctx context.Context) (*ImportResult, error)
}

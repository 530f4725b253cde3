package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/cyclesync/internal/domain"
)

// ActivityRepo stores the shared activity catalog. List returns entries in
// insertion order.
type ActivityRepo interface {
	Upsert(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	List(ctx context.Context) ([]*domain.Activity, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Activity, error)
}

type UserActivityRepo interface {
	Create(ctx context.Context, ua *domain.UserActivity) error
	GetByActivity(ctx context.Context, owner domain.Owner, activityID string) (*domain.UserActivity, error)
	ListByOwner(ctx context.Context, owner domain.Owner) ([]*domain.UserActivity, error)
	ListActive(ctx context.Context, owner domain.Owner) ([]*domain.UserActivity, error)
	Update(ctx context.Context, ua *domain.UserActivity) error
}

type ScheduledActivityRepo interface {
	Create(ctx context.Context, s *domain.ScheduledActivity) error
	GetByID(ctx context.Context, owner domain.Owner, id string) (*domain.ScheduledActivity, error)
	ListByWeek(ctx context.Context, owner domain.Owner, weekStart time.Time) ([]*domain.ScheduledActivity, error)
	Update(ctx context.Context, s *domain.ScheduledActivity) error
	Delete(ctx context.Context, owner domain.Owner, id string) error
	DeleteByWeek(ctx context.Context, owner domain.Owner, weekStart time.Time) (int64, error)
}

// CycleSettingsRepo holds at most one settings row per owner.
type CycleSettingsRepo interface {
	Get(ctx context.Context, owner domain.Owner) (*domain.CycleSettings, error)
	Upsert(ctx context.Context, s *domain.CycleSettings) error
}

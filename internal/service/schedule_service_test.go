package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/repository"
	"github.com/alexanderramin/cyclesync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const draftWeek = "2024-01-07"

func newScheduleSvc(env *testEnv) ScheduleService {
	return NewScheduleService(env.activities, env.choices, env.settings, env.schedules, env.uow)
}

func seededDraft(week string, seed uint64) contract.AutoDraftRequest {
	req := contract.NewAutoDraftRequest(testutil.TestOwner, testutil.Date(week))
	req.Seed = &seed
	return req
}

func TestScheduleService_PlaceUsesActivityDuration(t *testing.T) {
	env := setupRepos(t)
	a := env.addActivity(t, "Pilates", testutil.WithDuration(45))
	svc := newScheduleSvc(env)
	ctx := context.Background()

	entry, err := svc.Place(ctx, testutil.TestOwner, a.ID, testutil.Date(draftWeek), 3, domain.MustClock("18:30"))
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "19:15", entry.EndTime.String())

	week, err := svc.Week(ctx, testutil.TestOwner, testutil.Date(draftWeek))
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, "Pilates", week[0].Name())
	assert.Equal(t, 3, week[0].Entry.DayOfWeek)
}

func TestScheduleService_PlaceRejectsBadInput(t *testing.T) {
	env := setupRepos(t)
	a := env.addActivity(t, "Pilates")
	svc := newScheduleSvc(env)
	ctx := context.Background()

	_, err := svc.Place(ctx, testutil.TestOwner, a.ID, testutil.Date("2024-01-08"), 0, domain.MustClock("07:00"))
	assert.Error(t, err, "Monday is not a week start")

	_, err = svc.Place(ctx, testutil.TestOwner, a.ID, testutil.Date(draftWeek), 7, domain.MustClock("07:00"))
	assert.Error(t, err, "day 7 is out of range")

	_, err = svc.Place(ctx, testutil.TestOwner, "missing", testutil.Date(draftWeek), 0, domain.MustClock("07:00"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScheduleService_MoveKeepsLength(t *testing.T) {
	env := setupRepos(t)
	a := env.addActivity(t, "Late stretch")
	entry := env.schedule(t, a.ID, draftWeek, testutil.WithSlot("23:30", "00:30"))
	svc := newScheduleSvc(env)

	moved, err := svc.Move(context.Background(), testutil.TestOwner, entry.ID, 4, domain.MustClock("10:00"))
	require.NoError(t, err)
	assert.Equal(t, 4, moved.DayOfWeek)
	assert.Equal(t, "10:00", moved.StartTime.String())
	assert.Equal(t, "11:00", moved.EndTime.String())

	stored, err := env.schedules.GetByID(context.Background(), testutil.TestOwner, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.DayOfWeek)
}

func TestScheduleService_RemoveAndComplete(t *testing.T) {
	env := setupRepos(t)
	a := env.addActivity(t, "Meal prep")
	keep := env.schedule(t, a.ID, draftWeek)
	drop := env.schedule(t, a.ID, draftWeek, testutil.WithDay(1))
	svc := newScheduleSvc(env)
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, testutil.TestOwner, drop.ID))
	assert.ErrorIs(t, svc.Remove(ctx, testutil.TestOwner, drop.ID), repository.ErrNotFound)

	done, err := svc.SetCompleted(ctx, testutil.TestOwner, keep.ID, true)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)

	week, err := svc.Week(ctx, testutil.TestOwner, testutil.Date(draftWeek))
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.True(t, week[0].Entry.IsCompleted)

	undone, err := svc.SetCompleted(ctx, testutil.TestOwner, keep.ID, false)
	require.NoError(t, err)
	assert.False(t, undone.IsCompleted)
}

func TestScheduleService_EntriesAreScopedByOwner(t *testing.T) {
	env := setupRepos(t)
	a := env.addActivity(t, "Nap")
	other := env.schedule(t, a.ID, draftWeek, testutil.WithScheduledOwner("someone-else"))
	svc := newScheduleSvc(env)
	ctx := context.Background()

	_, err := svc.SetCompleted(ctx, testutil.TestOwner, other.ID, true)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	week, err := svc.Week(ctx, testutil.TestOwner, testutil.Date(draftWeek))
	require.NoError(t, err)
	assert.Empty(t, week)
}

func TestAutoDraft_RejectsNonSundayWeek(t *testing.T) {
	env := setupRepos(t)
	svc := newScheduleSvc(env)

	_, err := svc.AutoDraft(context.Background(), seededDraft("2024-01-09", 1))
	var de *contract.DraftError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, contract.DraftErrInvalidWeek, de.Code)
}

func TestAutoDraft_NoActiveActivitiesLeavesWeekAlone(t *testing.T) {
	env := setupRepos(t)
	a := env.addActivity(t, "Walk")
	existing := env.schedule(t, a.ID, draftWeek)
	svc := newScheduleSvc(env)
	ctx := context.Background()

	resp, err := svc.AutoDraft(ctx, seededDraft(draftWeek, 1))
	require.NoError(t, err)
	assert.True(t, resp.Skipped)
	assert.Empty(t, resp.Created)

	_, err = env.schedules.GetByID(ctx, testutil.TestOwner, existing.ID)
	assert.NoError(t, err, "existing entry must survive an empty draft")
}

func TestAutoDraft_ReplacesWeek(t *testing.T) {
	env := setupRepos(t)
	env.configure(t, draftWeek)
	a := env.addActivity(t, "Walk")
	b := env.addActivity(t, "Soup", testutil.WithPhases(domain.PhaseMenstruation))
	c := env.addActivity(t, "Run", testutil.WithPhases(domain.PhaseFollicular))
	for _, act := range []*domain.Activity{a, b, c} {
		env.activate(t, act, false)
	}
	old := env.schedule(t, a.ID, draftWeek)
	svc := newScheduleSvc(env)
	ctx := context.Background()

	resp, err := svc.AutoDraft(ctx, seededDraft(draftWeek, 42))
	require.NoError(t, err)
	assert.False(t, resp.Skipped)
	assert.Equal(t, 1, resp.Deleted)
	require.Len(t, resp.Days, 7)

	_, err = env.schedules.GetByID(ctx, testutil.TestOwner, old.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	week, err := env.schedules.ListByWeek(ctx, testutil.TestOwner, testutil.Date(draftWeek))
	require.NoError(t, err)
	assert.Len(t, week, len(resp.Created))
	for _, e := range resp.Created {
		assert.NotEmpty(t, e.ID)
	}

	perDay := map[int]int{}
	for _, e := range week {
		perDay[e.DayOfWeek]++
		// Days 0-4 are menstruation, 5-6 follicular; Walk fits both.
		if e.DayOfWeek <= 4 {
			assert.NotEqual(t, c.ID, e.ActivityID, "follicular-only activity on a menstruation day")
		} else {
			assert.NotEqual(t, b.ID, e.ActivityID, "menstruation-only activity on a follicular day")
		}
	}
	for day := 0; day < 7; day++ {
		assert.GreaterOrEqual(t, perDay[day], 1)
		assert.LessOrEqual(t, perDay[day], 3)
	}
}

func TestAutoDraft_DryRunWritesNothing(t *testing.T) {
	env := setupRepos(t)
	a := env.addActivity(t, "Walk")
	env.activate(t, a, false)
	old := env.schedule(t, a.ID, draftWeek)
	svc := newScheduleSvc(env)
	ctx := context.Background()

	req := seededDraft(draftWeek, 7)
	req.DryRun = true
	resp, err := svc.AutoDraft(ctx, req)
	require.NoError(t, err)
	assert.True(t, resp.DryRun)
	assert.Equal(t, 1, resp.Deleted)
	assert.NotEmpty(t, resp.Created)

	week, err := env.schedules.ListByWeek(ctx, testutil.TestOwner, testutil.Date(draftWeek))
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, old.ID, week[0].ID)
}

func TestAutoDraft_SameSeedSamePlan(t *testing.T) {
	env := setupRepos(t)
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		env.activate(t, env.addActivity(t, n), false)
	}
	svc := newScheduleSvc(env)
	ctx := context.Background()

	plan := func() []string {
		req := seededDraft(draftWeek, 99)
		req.DryRun = true
		resp, err := svc.AutoDraft(ctx, req)
		require.NoError(t, err)
		out := make([]string, len(resp.Created))
		for i, e := range resp.Created {
			out[i] = fmt.Sprintf("%d %s %s", e.DayOfWeek, e.StartTime, e.ActivityID)
		}
		return out
	}
	assert.Equal(t, plan(), plan())
}

func TestAutoDraft_NoOverlapKeepsDaysDisjoint(t *testing.T) {
	env := setupRepos(t)
	for _, n := range []string{"Long A", "Long B", "Long C"} {
		env.activate(t, env.addActivity(t, n, testutil.WithDuration(150)), false)
	}
	svc := newScheduleSvc(env)

	req := seededDraft(draftWeek, 3)
	req.NoOverlap = true
	req.DryRun = true
	resp, err := svc.AutoDraft(context.Background(), req)
	require.NoError(t, err)

	byDay := map[int][]domain.ScheduledActivity{}
	for _, e := range resp.Created {
		byDay[e.DayOfWeek] = append(byDay[e.DayOfWeek], e)
	}
	for day, entries := range byDay {
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				a, b := entries[i], entries[j]
				assert.NotEqual(t, a.StartTime, b.StartTime, "day %d shares a start time", day)
			}
		}
	}
}

func TestAutoDraft_InvalidStoredSettings(t *testing.T) {
	env := setupRepos(t)
	env.configure(t, draftWeek, testutil.WithCycleLength(50))
	env.activate(t, env.addActivity(t, "Walk"), false)
	svc := newScheduleSvc(env)

	_, err := svc.AutoDraft(context.Background(), seededDraft(draftWeek, 1))
	var de *contract.DraftError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, contract.DraftErrDataIntegrity, de.Code)
}

func TestAutoDraft_UnknownBands(t *testing.T) {
	env := setupRepos(t)
	svc := newScheduleSvc(env)

	req := seededDraft(draftWeek, 1)
	req.Bands = "lunar"
	_, err := svc.AutoDraft(context.Background(), req)
	require.Error(t, err)
}

func TestAutoDraft_RollbackOnCreateFailure(t *testing.T) {
	env := setupRepos(t)
	a := env.addActivity(t, "Walk")
	b := env.addActivity(t, "Read")
	env.activate(t, a, false)
	env.activate(t, b, false)
	old := env.schedule(t, a.ID, draftWeek)
	ctx := context.Background()

	// The old entry is already deleted and one new entry written when the
	// second insert fails.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 2,
		Match:  "INSERT INTO scheduled_activities",
		Err:    fmt.Errorf("injected insert failure"),
	}
	svc := NewScheduleService(env.activities, env.choices, env.settings, env.schedules, failUoW)

	_, err := svc.AutoDraft(ctx, seededDraft(draftWeek, 5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected insert failure")
	var de *contract.DraftError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, contract.DraftErrStoreFailure, de.Code)

	week, err := env.schedules.ListByWeek(ctx, testutil.TestOwner, testutil.Date(draftWeek))
	require.NoError(t, err)
	require.Len(t, week, 1, "old entry restored by rollback")
	assert.Equal(t, old.ID, week[0].ID)
}

package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleService_SaveCreatesThenUpdatesSingleRow(t *testing.T) {
	env := setupRepos(t)
	svc := NewCycleService(env.settings, env.schedules, nil)
	ctx := context.Background()

	first, err := svc.Save(ctx, testutil.TestOwner, &domain.CycleSettings{
		CycleLengthDays:  28,
		PeriodLengthDays: 5,
		LastPeriodStart:  testutil.Date("2024-01-07"),
	})
	require.NoError(t, err)

	second, err := svc.Save(ctx, testutil.TestOwner, &domain.CycleSettings{
		CycleLengthDays:  32,
		PeriodLengthDays: 6,
		LastPeriodStart:  testutil.Date("2024-02-04"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "owner keeps one settings row")
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	got, err := svc.Get(ctx, testutil.TestOwner)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 32, got.CycleLengthDays)
	assert.Equal(t, 6, got.PeriodLengthDays)
	assert.Equal(t, "2024-02-04", got.LastPeriodStart.Format(domain.DateLayout))
}

func TestCycleService_SaveRejectsNil(t *testing.T) {
	env := setupRepos(t)
	svc := NewCycleService(env.settings, env.schedules, nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, testutil.TestOwner, nil)
	require.Error(t, err)
	assert.Nil(t, saved)

	got, err := svc.Get(ctx, testutil.TestOwner)
	require.NoError(t, err)
	assert.Nil(t, got, "nothing stored")
}

func TestCycleService_SaveRejectsOutOfRange(t *testing.T) {
	env := setupRepos(t)
	svc := NewCycleService(env.settings, env.schedules, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		cycle  int
		period int
	}{
		{"cycle too short", 20, 5},
		{"cycle too long", 41, 5},
		{"period too short", 28, 1},
		{"period too long", 28, 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Save(ctx, testutil.TestOwner, &domain.CycleSettings{
				CycleLengthDays:  tc.cycle,
				PeriodLengthDays: tc.period,
				LastPeriodStart:  testutil.Date("2024-01-07"),
			})
			require.Error(t, err)
		})
	}

	got, err := svc.Get(ctx, testutil.TestOwner)
	require.NoError(t, err)
	assert.Nil(t, got, "nothing stored after rejected saves")
}

func TestCycleService_InfoUnconfigured(t *testing.T) {
	env := setupRepos(t)
	svc := NewCycleService(env.settings, env.schedules, nil)

	info, err := svc.Info(context.Background(), testutil.TestOwner, testutil.Date("2024-03-01"))
	require.NoError(t, err)
	assert.False(t, info.Configured)
	assert.Equal(t, domain.PhaseFollicular, info.Phase)
	assert.Equal(t, 1, info.CycleDay)
}

func TestCycleService_InfoConfigured(t *testing.T) {
	env := setupRepos(t)
	env.configure(t, "2024-01-07")
	svc := NewCycleService(env.settings, env.schedules, nil)

	info, err := svc.Info(context.Background(), testutil.TestOwner, testutil.Date("2024-01-20"))
	require.NoError(t, err)
	assert.True(t, info.Configured)
	assert.Equal(t, 14, info.CycleDay)
	assert.Equal(t, domain.PhaseOvulation, info.Phase)
	assert.Equal(t, 15, info.DaysUntilNextPeriod)
}

func TestCycleService_CalendarAlignsWeekAndCountsEntries(t *testing.T) {
	env := setupRepos(t)
	env.configure(t, "2024-01-07")
	a := env.addActivity(t, "Stretch")
	env.schedule(t, a.ID, "2024-01-07", testutil.WithDay(2))
	env.schedule(t, a.ID, "2024-01-07", testutil.WithDay(2), testutil.WithSlot("18:00", "18:30"))
	svc := NewCycleService(env.settings, env.schedules, nil)

	// A Wednesday lands in the week starting Sunday 2024-01-07.
	cal, err := svc.Calendar(context.Background(), testutil.TestOwner, testutil.Date("2024-01-10"), "")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-07", cal.WeekStart.Format(domain.DateLayout))
	assert.Equal(t, "fixed", cal.Bands)
	assert.True(t, cal.Configured)
	require.Len(t, cal.Days, 7)
	assert.Equal(t, domain.PhaseMenstruation, cal.Days[0].Phase)
	assert.Equal(t, 1, cal.Days[0].CycleDay)
	assert.Equal(t, domain.PhaseFollicular, cal.Days[6].Phase)
	assert.Equal(t, 7, cal.Days[6].CycleDay)
	assert.Equal(t, 2, cal.Days[2].Scheduled)
	assert.Equal(t, 0, cal.Days[3].Scheduled)
}

func TestCycleService_CalendarProportionalBands(t *testing.T) {
	env := setupRepos(t)
	env.configure(t, "2024-01-07", testutil.WithCycleLength(35))
	svc := NewCycleService(env.settings, env.schedules, nil)
	ctx := context.Background()

	// 2024-01-21 is cycle day 15.
	fixed, err := svc.Calendar(ctx, testutil.TestOwner, testutil.Date("2024-01-21"), "fixed")
	require.NoError(t, err)
	proportional, err := svc.Calendar(ctx, testutil.TestOwner, testutil.Date("2024-01-21"), "proportional")
	require.NoError(t, err)

	assert.Equal(t, 15, fixed.Days[0].CycleDay)
	assert.Equal(t, domain.PhaseOvulation, fixed.Days[0].Phase)
	assert.Equal(t, domain.PhaseFollicular, proportional.Days[0].Phase)
	assert.Equal(t, "proportional", proportional.Bands)
}

func TestCycleService_CalendarUnknownBands(t *testing.T) {
	env := setupRepos(t)
	svc := NewCycleService(env.settings, env.schedules, nil)

	_, err := svc.Calendar(context.Background(), testutil.TestOwner, testutil.Date("2024-01-07"), "lunar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lunar")
}

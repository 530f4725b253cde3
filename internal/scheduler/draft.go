package scheduler

import (
	"time"

	"github.com/alexanderramin/cyclesync/internal/cycle"
	"github.com/alexanderramin/cyclesync/internal/domain"
)

const (
	minPicksPerDay = 2
	maxPicksPerDay = 3
)

// DraftInput is an immutable snapshot for one DraftWeek call.
type DraftInput struct {
	Owner            domain.Owner
	ActiveActivities []*domain.Activity
	WeekStart        time.Time
	Settings         *domain.CycleSettings
	Existing         []*domain.ScheduledActivity

	Calculator *cycle.Calculator // nil: fixed bands
	Rand       Rand              // nil: time-seeded
	Slots      SlotStrategy      // nil: RandomSlots
	StartTimes []domain.Clock    // nil: DefaultStartTimes
}

// DayDraft describes how one day of the plan was built.
type DayDraft struct {
	DayOfWeek    int
	Date         time.Time
	Phase        domain.Phase
	PoolSize     int
	UsedFallback bool // no active activity was tagged with Phase
	Picked       int
}

// DraftPlan is the full replacement for a week. Apply every delete before
// any create.
type DraftPlan struct {
	WeekStart time.Time
	ToDelete  []string
	ToCreate  []domain.ScheduledActivity
	Days      []DayDraft
}

// Empty reports whether applying the plan would change nothing.
func (p DraftPlan) Empty() bool {
	return len(p.ToDelete) == 0 && len(p.ToCreate) == 0
}

// DraftWeek builds a randomized week of 2-3 activities per day, drawn from
// the active activities tagged with each day's phase. Existing entries of
// the week are all scheduled for deletion. With no active activities the
// plan is empty and existing entries are left alone.
func DraftWeek(in DraftInput) DraftPlan {
	weekStart := domain.DateOf(in.WeekStart)
	plan := DraftPlan{WeekStart: weekStart, ToDelete: []string{}, ToCreate: []domain.ScheduledActivity{}}
	if len(in.ActiveActivities) == 0 {
		return plan
	}

	calc := in.Calculator
	if calc == nil {
		calc = cycle.NewCalculator()
	}
	rng := in.Rand
	if rng == nil {
		rng = NewRand()
	}
	slots := in.Slots
	if slots == nil {
		slots = RandomSlots{}
	}
	times := in.StartTimes
	if len(times) == 0 {
		times = DefaultStartTimes
	}

	for _, e := range in.Existing {
		plan.ToDelete = append(plan.ToDelete, e.ID)
	}

	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)
		phase := calc.PhaseForDate(in.Settings, date)

		pool := activitiesForPhase(in.ActiveActivities, phase)
		fallback := len(pool) == 0
		if fallback {
			pool = in.ActiveActivities
		}

		picks := pickActivities(pool, rng)
		starts := slots.Assign(picks, times, rng)
		for i, a := range picks {
			plan.ToCreate = append(plan.ToCreate, domain.ScheduledActivity{
				Owner:      in.Owner,
				ActivityID: a.ID,
				WeekStart:  weekStart,
				DayOfWeek:  day,
				StartTime:  starts[i],
				EndTime:    starts[i].AddMinutes(a.EffectiveDuration()),
			})
		}

		plan.Days = append(plan.Days, DayDraft{
			DayOfWeek:    day,
			Date:         date,
			Phase:        phase,
			PoolSize:     len(pool),
			UsedFallback: fallback,
			Picked:       len(picks),
		})
	}
	return plan
}

func activitiesForPhase(all []*domain.Activity, phase domain.Phase) []*domain.Activity {
	var out []*domain.Activity
	for _, a := range all {
		if a.HasPhase(phase) {
			out = append(out, a)
		}
	}
	return out
}

// pickActivities takes 2 or 3 distinct activities from a shuffled copy of
// pool, or all of them when the pool is smaller.
func pickActivities(pool []*domain.Activity, rng Rand) []*domain.Activity {
	k := minPicksPerDay + rng.IntN(maxPicksPerDay-minPicksPerDay+1)

	shuffled := make([]*domain.Activity, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if k > len(shuffled) {
		k = len(shuffled)
	}
	return shuffled[:k]
}

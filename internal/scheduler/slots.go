package scheduler

import (
	"sort"

	"github.com/alexanderramin/cyclesync/internal/domain"
)

// DefaultStartTimes are the candidate start times for drafted activities.
var DefaultStartTimes = []domain.Clock{
	domain.MustClock("07:00"),
	domain.MustClock("09:00"),
	domain.MustClock("12:00"),
	domain.MustClock("15:00"),
	domain.MustClock("18:00"),
	domain.MustClock("20:00"),
}

// SlotStrategy picks a start time for each activity drafted on one day.
// The returned slice is parallel to picks.
type SlotStrategy interface {
	Assign(picks []*domain.Activity, times []domain.Clock, rng Rand) []domain.Clock
}

// RandomSlots draws every start time independently and uniformly.
// Two picks on the same day may overlap.
type RandomSlots struct{}

func (RandomSlots) Assign(picks []*domain.Activity, times []domain.Clock, rng Rand) []domain.Clock {
	starts := make([]domain.Clock, len(picks))
	for i := range picks {
		starts[i] = times[rng.IntN(len(times))]
	}
	return starts
}

// FirstFitSlots gives each pick the earliest candidate time whose interval
// does not overlap one already placed that day. A pick that fits nowhere
// gets a random time.
type FirstFitSlots struct{}

func (FirstFitSlots) Assign(picks []*domain.Activity, times []domain.Clock, rng Rand) []domain.Clock {
	sorted := make([]domain.Clock, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	type interval struct{ start, end int }
	var placed []interval

	starts := make([]domain.Clock, len(picks))
	for i, a := range picks {
		dur := a.EffectiveDuration()
		chosen := -1
		for _, t := range sorted {
			start, end := int(t), int(t)+dur
			free := true
			for _, p := range placed {
				if Overlaps(start, end, p.start, p.end) {
					free = false
					break
				}
			}
			if free {
				chosen = int(t)
				break
			}
		}
		if chosen < 0 {
			chosen = int(times[rng.IntN(len(times))])
		}
		starts[i] = domain.Clock(chosen)
		placed = append(placed, interval{chosen, chosen + dur})
	}
	return starts
}

// Overlaps reports whether half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// SlotStrategyFor returns FirstFitSlots when noOverlap is set.
func SlotStrategyFor(noOverlap bool) SlotStrategy {
	if noOverlap {
		return FirstFitSlots{}
	}
	return RandomSlots{}
}

package scheduler

import (
	"testing"

	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(420, 480, 450, 500))
	assert.True(t, Overlaps(420, 600, 450, 500))
	assert.False(t, Overlaps(420, 480, 480, 540), "touching intervals do not overlap")
	assert.False(t, Overlaps(540, 600, 420, 480))
}

func TestFirstFitSlots_EarliestFreeTime(t *testing.T) {
	picks := []*domain.Activity{act("a", 60), act("b", 150), act("c", 60)}
	starts := FirstFitSlots{}.Assign(picks, DefaultStartTimes, fixedRand{})

	// a 07:00-08:00, b 09:00-11:30, c skips 09:00 and lands on 12:00.
	assert.Equal(t, []string{"07:00", "09:00", "12:00"}, clocks(starts))
}

func TestFirstFitSlots_NoFreeSlotFallsBackToRandom(t *testing.T) {
	times := []domain.Clock{domain.MustClock("07:00")}
	picks := []*domain.Activity{act("a", 60), act("b", 60)}
	starts := FirstFitSlots{}.Assign(picks, times, fixedRand{})
	assert.Equal(t, []string{"07:00", "07:00"}, clocks(starts))
}

func TestRandomSlots_UsesCandidateTimes(t *testing.T) {
	picks := []*domain.Activity{act("a", 60), act("b", 60)}
	starts := RandomSlots{}.Assign(picks, DefaultStartTimes, fixedRand{v: 2})
	assert.Equal(t, []string{"12:00", "12:00"}, clocks(starts), "collisions are allowed")
}

func TestSlotStrategyFor(t *testing.T) {
	assert.IsType(t, FirstFitSlots{}, SlotStrategyFor(true))
	assert.IsType(t, RandomSlots{}, SlotStrategyFor(false))
}

func clocks(cs []domain.Clock) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

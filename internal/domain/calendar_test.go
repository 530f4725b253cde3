package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(start, start))
	assert.Equal(t, 14, DaysBetween(start, time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, -3, DaysBetween(start, time.Date(2023, 12, 29, 8, 0, 0, 0, time.UTC)))
}

func TestDaysBetween_IgnoresLocationOffset(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	a := time.Date(2024, 3, 10, 1, 0, 0, 0, loc)
	b := time.Date(2024, 3, 11, 0, 30, 0, 0, loc)
	assert.Equal(t, 1, DaysBetween(a, b))
}

func TestWeekStartOf_Sunday(t *testing.T) {
	// 2024-01-10 is a Wednesday.
	ws := WeekStartOf(time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), ws)
	assert.True(t, IsWeekStart(ws))
	assert.False(t, IsWeekStart(ws.AddDate(0, 0, 1)))
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("07:30")
	require.NoError(t, err)
	assert.Equal(t, Clock(450), c)
	assert.Equal(t, "07:30", c.String())

	for _, bad := range []string{"7:30", "24:00", "12:60", "ab:cd", "+1:00", ""} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "should reject %q", bad)
	}
}

func TestClockAddMinutes_WrapsAtMidnight(t *testing.T) {
	assert.Equal(t, "21:00", MustClock("20:00").AddMinutes(60).String())
	assert.Equal(t, "00:30", MustClock("23:00").AddMinutes(90).String())
	assert.Equal(t, "23:50", MustClock("00:10").AddMinutes(-20).String())
}

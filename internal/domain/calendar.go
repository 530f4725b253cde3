package domain

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the storage and flag format for calendar dates.
const DateLayout = "2006-01-02"

const minutesPerDay = 24 * 60

// DateOf returns midnight UTC of t's civil date in t's own location.
// Calendar arithmetic is done on these values so DST never shifts a day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// DaysBetween returns the whole number of days from `from` to `to`.
// It is negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}

// WeekStartOf returns the Sunday that starts t's week.
func WeekStartOf(t time.Time) time.Time {
	d := DateOf(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// IsWeekStart reports whether t is a Sunday-aligned calendar date.
func IsWeekStart(t time.Time) bool {
	return DateOf(t).Equal(t) && t.Weekday() == time.Sunday
}

// Clock is a time of day in minutes after midnight, rendered as "HH:MM".
type Clock int

// ParseClock parses an "HH:MM" string (24-hour).
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	h, herr := strconv.Atoi(s[:2])
	m, merr := strconv.Atoi(s[3:])
	if herr != nil || merr != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return Clock(h*60 + m), nil
}

// MustClock is ParseClock for package-level constants.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// AddMinutes returns c shifted by n minutes, wrapping within a 24-hour clock.
func (c Clock) AddMinutes(n int) Clock {
	v := (int(c) + n) % minutesPerDay
	if v < 0 {
		v += minutesPerDay
	}
	return Clock(v)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

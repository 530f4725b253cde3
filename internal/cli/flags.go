package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a YYYY-MM-DD flag. The zero time means "not given".
type dateValue struct{ t *time.Time }

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(p *time.Time) *dateValue { return &dateValue{t: p} }

func (d *dateValue) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	*d.t = t
	return nil
}

func (d *dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(domain.DateLayout)
}

func (d *dateValue) Type() string { return "date" }

// clockValue is an HH:MM flag.
type clockValue struct {
	c   *domain.Clock
	set bool
}

var _ pflag.Value = (*clockValue)(nil)

func newClockValue(p *domain.Clock) *clockValue { return &clockValue{c: p} }

func (v *clockValue) Set(s string) error {
	c, err := domain.ParseClock(s)
	if err != nil {
		return err
	}
	*v.c, v.set = c, true
	return nil
}

func (v *clockValue) String() string {
	if v.c == nil || !v.set {
		return ""
	}
	return v.c.String()
}

func (v *clockValue) Type() string { return "HH:MM" }

// dayValue accepts 0..6 or a weekday name such as "tue".
type dayValue struct{ d *int }

var _ pflag.Value = (*dayValue)(nil)

func newDayValue(p *int) *dayValue { return &dayValue{d: p} }

var dayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

func (v *dayValue) Set(s string) error {
	if n, err := strconv.Atoi(s); err == nil {
		if !domain.ValidDayOfWeek(n) {
			return fmt.Errorf("day must be 0-6 (Sun-Sat), got %d", n)
		}
		*v.d = n
		return nil
	}
	n, ok := dayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return fmt.Errorf("unknown day %q", s)
	}
	*v.d = n
	return nil
}

func (v *dayValue) String() string {
	if v.d == nil {
		return ""
	}
	return strconv.Itoa(*v.d)
}

func (v *dayValue) Type() string { return "day" }

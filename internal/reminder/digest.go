package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/domain"
)

// Digest is the daily summary sent to the owner.
type Digest struct {
	Owner      domain.Owner
	Date       time.Time
	Info       domain.PhaseInfo
	Agenda     []contract.AgendaItem
	PeriodSoon bool
}

// NewDigest summarises a today view. PeriodSoon is set when the next
// period is at most warningDays away; it stays false while the cycle is
// not configured.
func NewDigest(owner domain.Owner, today *contract.TodayResponse, warningDays int) Digest {
	return Digest{
		Owner:      owner,
		Date:       today.Date,
		Info:       today.Info,
		Agenda:     today.Agenda,
		PeriodSoon: today.Info.Configured && today.Info.DaysUntilNextPeriod <= warningDays,
	}
}

// Render formats the digest as plain text.
func (d Digest) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", d.Info.Phase.Emoji(), d.Date.Format("Monday, 02 Jan 2006"))
	if d.Info.Configured {
		fmt.Fprintf(&b, "%s phase, cycle day %d of %d\n", d.Info.Phase.Label(), d.Info.CycleDay, d.Info.CycleLengthDays)
	} else {
		b.WriteString("Cycle not configured yet. Run `cyclesync cycle set`.\n")
	}
	if d.PeriodSoon {
		switch d.Info.DaysUntilNextPeriod {
		case 1:
			b.WriteString("Period expected tomorrow.\n")
		default:
			fmt.Fprintf(&b, "Period expected in %d days.\n", d.Info.DaysUntilNextPeriod)
		}
	}

	if len(d.Agenda) == 0 {
		b.WriteString("Nothing scheduled today.\n")
		return b.String()
	}
	b.WriteString("Today:\n")
	for _, item := range d.Agenda {
		mark := " "
		if item.Entry.IsCompleted {
			mark = "x"
		}
		fmt.Fprintf(&b, "  [%s] %s-%s %s\n", mark, item.Entry.StartTime, item.Entry.EndTime, item.Name())
	}
	return b.String()
}

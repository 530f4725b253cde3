package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cyclesync/internal/contract"
	"github.com/alexanderramin/cyclesync/internal/domain"
)

// FormatCycleInfo renders the owner's settings and where ref falls in them.
func FormatCycleInfo(s *domain.CycleSettings, info domain.PhaseInfo, ref time.Time) string {
	if !s.Configured() {
		return RenderBox("Cycle", StyleYellow.Render("Not configured.")+"\n"+
			Dim("Defaults apply: every day reads as follicular until you run `cyclesync cycle set`."))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("LAST START "), HumanDate(s.LastPeriodStart))
	fmt.Fprintf(&b, "%s  %d days\n", Dim("CYCLE      "), info.CycleLengthDays)
	fmt.Fprintf(&b, "%s  %d days\n\n", Dim("PERIOD     "), info.PeriodLengthDays)
	fmt.Fprintf(&b, "%s on %s\n", PhaseBadge(info.Phase), HumanDate(ref))
	b.WriteString(RenderCycleProgress(info, 28) + "\n")
	fmt.Fprintf(&b, "Next period %s\n", RelativeDays(info.DaysUntilNextPeriod))
	return RenderBox("Cycle", b.String())
}

// FormatCalendar renders a week as one row per day.
func FormatCalendar(cal *contract.CalendarResponse) string {
	headers := []string{"DAY", "DATE", "PHASE", "CYCLE DAY", "PLANNED"}
	rows := make([][]string, 0, len(cal.Days))
	for _, d := range cal.Days {
		planned := Dim("-")
		if d.Scheduled > 0 {
			planned = fmt.Sprintf("%d", d.Scheduled)
		}
		rows = append(rows, []string{
			DayLabel(d.DayOfWeek),
			d.Date.Format(domain.DateLayout),
			PhaseBadge(d.Phase),
			fmt.Sprintf("%d", d.CycleDay),
			planned,
		})
	}

	body := RenderTable(headers, rows)
	if !cal.Configured {
		body += "\n" + StyleYellow.Render("Cycle not configured; phases are placeholders.")
	}
	title := fmt.Sprintf("Week of %s (%s bands)", cal.WeekStart.Format(domain.DateLayout), cal.Bands)
	return RenderBox(title, body)
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cyclesync/internal/contract"
)

// FormatToday renders the home view: phase card, suggestions and agenda.
func FormatToday(resp *contract.TodayResponse) string {
	var b strings.Builder
	info := resp.Info

	b.WriteString(PhaseBadge(info.Phase) + "  " + Dim(HumanDate(resp.Date)) + "\n")
	b.WriteString(Dim(info.Phase.Description()) + "\n\n")
	if info.Configured {
		b.WriteString(RenderCycleProgress(info, 28) + "\n")
		fmt.Fprintf(&b, "Next period %s (%s)\n",
			RelativeDays(info.DaysUntilNextPeriod), HumanDate(resp.Date.AddDate(0, 0, info.DaysUntilNextPeriod)))
	} else {
		b.WriteString(StyleYellow.Render("Cycle not configured.") + Dim(" Run `cyclesync cycle set` to personalise.") + "\n")
	}

	b.WriteString("\n" + Header("Suggested for you") + "\n")
	if len(resp.Recommendations) == 0 {
		b.WriteString(Dim("No activities for this phase yet.") + "\n")
	}
	for _, a := range resp.Recommendations {
		fmt.Fprintf(&b, "  %s %s %s\n", a.DisplayEmoji(), Bold(a.Name), Dim(FormatMinutes(a.EffectiveDuration())))
	}

	b.WriteString("\n" + Header("Today") + "\n")
	if len(resp.Agenda) == 0 {
		b.WriteString(Dim("Nothing scheduled.") + "\n")
	}
	for _, item := range resp.Agenda {
		fmt.Fprintf(&b, "  %s %s  %s %s\n", Check(item.Entry.IsCompleted), Slot(item.Entry), item.Name(), Dim(item.Entry.ID))
	}

	return RenderBox("Today", b.String())
}

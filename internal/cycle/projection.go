package cycle

import (
	"time"

	"github.com/alexanderramin/cyclesync/internal/domain"
)

// DayPhase is one day of a projected week.
type DayPhase struct {
	Date      time.Time
	DayOfWeek int
	Phase     domain.Phase
	CycleDay  int
}

// ProjectWeek returns the phase of each of the seven days from weekStart.
func (c *Calculator) ProjectWeek(settings *domain.CycleSettings, weekStart time.Time) []DayPhase {
	start := domain.DateOf(weekStart)
	days := make([]DayPhase, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		days = append(days, DayPhase{
			Date:      date,
			DayOfWeek: i,
			Phase:     c.PhaseForDate(settings, date),
			CycleDay:  CycleDay(settings, date),
		})
	}
	return days
}

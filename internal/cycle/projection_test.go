package cycle

import (
	"testing"

	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectWeek(t *testing.T) {
	days := NewCalculator().ProjectWeek(settings28(), date("2024-01-14"))
	require.Len(t, days, 7)

	assert.Equal(t, date("2024-01-14"), days[0].Date)
	assert.Equal(t, 14, days[0].CycleDay)
	assert.Equal(t, domain.PhaseOvulation, days[0].Phase)
	assert.Equal(t, 6, days[6].DayOfWeek)
	assert.Equal(t, 20, days[6].CycleDay)
	assert.Equal(t, domain.PhaseLuteal, days[6].Phase)
}

func TestProjectWeek_Unconfigured(t *testing.T) {
	for _, d := range NewCalculator().ProjectWeek(nil, date("2024-01-14")) {
		assert.Equal(t, domain.PhaseFollicular, d.Phase)
		assert.Equal(t, 1, d.CycleDay)
	}
}

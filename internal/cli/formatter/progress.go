package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cyclesync/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderCycleProgress draws how far into the cycle a day is, like
// [█████░░░░░░░] day 9/28, in the colour of the current phase.
func RenderCycleProgress(info domain.PhaseInfo, width int) string {
	if width < 2 {
		width = 2
	}
	length := info.CycleLengthDays
	if length <= 0 {
		length = domain.DefaultCycleLengthDays
	}
	filled := min(info.CycleDay*width/length, width)
	filled = max(filled, 0)

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] day %d/%d", PhaseStyle(info.Phase).Render(bar), info.CycleDay, length)
}

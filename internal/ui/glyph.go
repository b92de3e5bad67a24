package ui

import (
	"math"

	"github.com/Dicklesworthstone/statline/internal/model"
)

// Blank is drawn for percentages below the first ramp step.
const Blank = ' '

// ramp holds the eight filled blocks; each covers eleven integer percent
// points starting at 11, the last one open-ended from 88.
var ramp = [...]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Glyph maps a percentage to a vertical block. The value is truncated toward
// zero first, so 21.9 still draws ▁. NaN and anything below 11 draw Blank.
// +Inf deliberately draws a full block rather than Blank, the same as any
// other value saturated above 88.
func Glyph(percent float64) rune {
	switch {
	case math.IsNaN(percent), percent < 11:
		return Blank
	case percent >= 88:
		return ramp[len(ramp)-1]
	}
	return ramp[(int(percent)-11)/11]
}

const (
	heartFull   = "♥"
	heartHollow = "♡"
	heartOther  = "?"
)

// Heart returns the battery indicator for a state. Unknown is drawn as a full
// heart: macOS reports its "charge hold" steady state that way.
func Heart(state model.BatteryState) string {
	switch state {
	case model.StateCharging, model.StateFull, model.StateUnknown:
		return heartFull
	case model.StateDischarging, model.StateEmpty:
		return heartHollow
	default:
		return heartOther
	}
}

package derive

import (
	"fmt"

	"github.com/gridironlabs/leaguedash/internal/report"
)

// Heat-mapped cells map a column's range linearly onto hues from red (0)
// through yellow to green (120) at fixed saturation and lightness. A
// degenerate scale (min == max, including empty and singleton row sets)
// renders every value at the neutral midpoint hue.
const (
	hueSpan    = 120.0
	neutralHue = 60.0
)

// Scale is the per-column color scale derived from the visible row set.
// It must be recomputed whenever the visible rows change.
type Scale struct {
	Min, Max      float64
	LowerIsBetter bool
	populated     bool
}

// NewScale computes the min/max of a numeric column across a row set.
func NewScale(rows report.RowSet, field string, lowerIsBetter bool) Scale {
	s := Scale{LowerIsBetter: lowerIsBetter}
	for _, row := range rows {
		v, ok := row.Number(field)
		if !ok {
			continue
		}
		if !s.populated {
			s.Min, s.Max = v, v
			s.populated = true
			continue
		}
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}

// Hue maps a value onto [0, 120] degrees, clamped.
func (s Scale) Hue(value float64) float64 {
	if !s.populated || s.Max == s.Min {
		return neutralHue
	}
	percent := (value - s.Min) / (s.Max - s.Min)
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	if s.LowerIsBetter {
		percent = 1 - percent
	}
	return percent * hueSpan
}

// Color renders the value's hue as a CSS color.
func (s Scale) Color(value float64) string {
	return fmt.Sprintf("hsl(%.0f, 70%%, 45%%)", s.Hue(value))
}

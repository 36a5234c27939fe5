package chart

import (
	"fmt"
	"strings"
	"time"
)

// LabelFormatter formats y-axis labels. top is the upper bound of the y domain.
type LabelFormatter interface {
	Label(value, top float64) string
}

// TickFormatter formats x-axis tick labels.
type TickFormatter interface {
	Tick(t time.Time) string
}

// PrecisionLabels right-aligns labels to Width with the precision picked
// by Precision for the y maximum.
type PrecisionLabels struct {
	Width int
}

// Label implements LabelFormatter.
func (p PrecisionLabels) Label(value, top float64) string {
	return fmt.Sprintf("%*.*f", p.Width, Precision(top), value)
}

// ClockTicks prints time of day centered within Width.
type ClockTicks struct {
	Layout string
	Width  int
}

// Tick implements TickFormatter.
func (c ClockTicks) Tick(t time.Time) string {
	return center(t.Format(c.Layout), c.Width)
}

// center pads s on both sides to width, extra space going right.
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

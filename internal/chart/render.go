package chart

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/sar"
)

// legendSwatch is drawn in the series color before each legend entry.
const legendSwatch = "⠤⠤"

// Frame is one rendered chart. Both blocks may carry color markers.
type Frame struct {
	Chart    string
	Legend   string
	Geometry Geometry
}

// Renderer lays series out as a braille line chart.
type Renderer struct {
	labels  LabelFormatter
	ticks   TickFormatter
	palette []ColorIdentity
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLabelFormatter replaces the y-axis label policy.
func WithLabelFormatter(f LabelFormatter) Option {
	return func(r *Renderer) { r.labels = f }
}

// WithTickFormatter replaces the x-axis tick policy.
func WithTickFormatter(f TickFormatter) Option {
	return func(r *Renderer) { r.ticks = f }
}

// WithPalette replaces the series color cycle.
func WithPalette(p []ColorIdentity) Option {
	return func(r *Renderer) { r.palette = p }
}

// NewRenderer creates a renderer with the default formatters and palette.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		labels:  PrecisionLabels{Width: YLabelWidth},
		ticks:   ClockTicks{Layout: "15:04", Width: TickLabelWidth},
		palette: Palette,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the series against the axis for the given terminal size.
// Output depends only on its arguments.
func (r *Renderer) Render(axis sar.TimeAxis, series []sar.Series, opts Options, term TermSize) (Frame, error) {
	if len(axis) == 0 || len(series) == 0 {
		return Frame{}, errors.New(errors.ErrNoData, "Nothing to chart",
			"The current window holds no samples.")
	}
	for _, s := range series {
		if len(s.Values) != len(axis) {
			return Frame{}, errors.New(errors.ErrNoData,
				fmt.Sprintf("Series %q has %d samples for %d time points", s.Name, len(s.Values), len(axis)),
				"")
		}
	}

	xMin, xMax := XDomain(axis)
	yMax := YMax(series, opts.YMax)
	g := ComputeGeometry(opts, len(series), yMax, term)

	canvas := NewCanvas(g.Width, g.Height)
	for i, s := range series {
		r.plot(canvas, axis, s.Values, xMin, xMax, yMax, ColorFor(r.palette, i))
	}

	frame := Frame{
		Chart:    r.layout(canvas, g, opts.YLabel, xMin, xMax, yMax),
		Geometry: g,
	}
	if g.ShowLegend {
		frame.Legend = r.legend(series)
	}
	return frame, nil
}

// XDomain returns the x range. Spans over FullDaySpan show the whole day
// starting at the first sample's midnight.
func XDomain(axis sar.TimeAxis) (time.Time, time.Time) {
	lo, hi := axis[0], axis[0]
	for _, t := range axis[1:] {
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	if hi.Sub(lo) > FullDaySpan {
		midnight := time.Date(lo.Year(), lo.Month(), lo.Day(), 0, 0, 0, 0, lo.Location())
		return midnight, midnight.Add(24 * time.Hour)
	}
	return lo, hi
}

// YMax returns the top of the y domain: the override when positive, else
// the largest observed value. A non-positive result becomes 1 so an all-zero
// chart still has a scale.
func YMax(series []sar.Series, override float64) float64 {
	if override > 0 {
		return override
	}
	top := math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			top = math.Max(top, v)
		}
	}
	if top <= 0 {
		return 1
	}
	return top
}

func (r *Renderer) plot(c *Canvas, axis sar.TimeAxis, values []float64, xMin, xMax time.Time, yMax float64, color ColorIdentity) {
	span := xMax.Sub(xMin)
	px, py := -1, -1
	for i, v := range values {
		x := 0
		if span > 0 {
			x = int(math.Round(float64(axis[i].Sub(xMin)) / float64(span) * float64(c.DotsX()-1)))
		}
		y := int(math.Round(v / yMax * float64(c.DotsY()-1)))
		y = min(max(y, 0), c.DotsY()-1)

		if px < 0 {
			c.Set(x, y, color)
		} else {
			c.Line(px, py, x, y, color)
		}
		px, py = x, y
	}
}

func (r *Renderer) layout(c *Canvas, g Geometry, yLabel string, xMin, xMax time.Time, yMax float64) string {
	var lines []string

	header := ""
	if yLabel != "" {
		header = "(" + yLabel + ")"
	}
	lines = append(lines, fmt.Sprintf("%*s ^", YLabelWidth, header))

	for row := 0; row < g.Height; row++ {
		value := yMax * float64(g.Height-1-row) / float64(g.Height-1)
		lines = append(lines, r.labels.Label(value, yMax)+" | "+c.Row(row))
	}

	lines = append(lines, strings.Repeat("-", YLabelWidth+1)+"|-"+strings.Repeat("-", g.Width)+"> (Time)")
	lines = append(lines, strings.Repeat(" ", YLabelWidth+3)+r.tickRow(g.Width, xMin, xMax))

	return trimBlank(strings.Join(lines, "\n"))
}

func (r *Renderer) tickRow(width int, xMin, xMax time.Time) string {
	span := xMax.Sub(xMin)
	var b strings.Builder
	for col := 0; col+TickLabelWidth <= width; col += TickSpacing {
		t := xMin
		if width > 1 {
			t = xMin.Add(time.Duration(float64(span) * float64(col) / float64(width-1)))
		}
		label := r.ticks.Tick(t)
		b.WriteString(label)
		if pad := TickSpacing - len([]rune(label)); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func (r *Renderer) legend(series []sar.Series) string {
	lines := make([]string, 0, len(series))
	for i, s := range series {
		lines = append(lines, fmt.Sprintf(" %s%s%s %s ", Marker(ColorFor(r.palette, i)), legendSwatch, Reset, s.Name))
	}
	return trimBlank(strings.Join(lines, "\n"))
}

// trimBlank drops leading and trailing blank lines.
func trimBlank(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

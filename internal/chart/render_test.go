package chart

import (
	"strings"
	"testing"
	"time"

	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/sar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(h, m, s int) time.Time {
	return time.Date(0, 1, 1, h, m, s, 0, time.UTC)
}

func sampleWindow() (sar.TimeAxis, []sar.Series) {
	axis := sar.TimeAxis{clock(10, 0, 0), clock(10, 10, 0), clock(10, 20, 0), clock(10, 30, 0)}
	series := []sar.Series{
		{Name: "%user", Values: []float64{10, 40, 20, 80}},
		{Name: "%system", Values: []float64{5, 5, 10, 2}},
		{Name: "%iowait", Values: []float64{0, 1, 0, 3}},
	}
	return axis, series
}

func TestRender_Layout(t *testing.T) {
	axis, series := sampleWindow()
	term := TermSize{Cols: 80, Rows: 30}

	frame, err := NewRenderer().Render(axis, series, Options{YLabel: "%"}, term)
	require.NoError(t, err)

	lines := strings.Split(Strip(frame.Chart), "\n")
	g := frame.Geometry
	require.Len(t, lines, g.Height+3)

	assert.Equal(t, "       (%) ^", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "     80.00 | "), lines[1])
	assert.True(t, strings.HasPrefix(lines[g.Height], "      0.00 | "), lines[g.Height])
	assert.True(t, strings.HasSuffix(lines[g.Height+1], "> (Time)"))
	ticks := strings.Fields(lines[g.Height+2])
	require.NotEmpty(t, ticks)
	assert.Equal(t, "10:00", ticks[0])
	assert.Len(t, ticks, (g.Width-TickLabelWidth)/TickSpacing+1)
}

func TestRender_Legend(t *testing.T) {
	axis, series := sampleWindow()

	frame, err := NewRenderer().Render(axis, series, Options{}, TermSize{Cols: 80, Rows: 30})
	require.NoError(t, err)
	require.True(t, frame.Geometry.ShowLegend)

	lines := strings.Split(frame.Legend, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, " \x1b[96m⠤⠤\x1b[0m %user ", lines[0])
	assert.Equal(t, " \x1b[93m⠤⠤\x1b[0m %system ", lines[1])
	assert.Equal(t, " \x1b[95m⠤⠤\x1b[0m %iowait ", lines[2])

	frame, err = NewRenderer().Render(axis, series, Options{NoLegend: true}, TermSize{Cols: 80, Rows: 30})
	require.NoError(t, err)
	assert.Empty(t, frame.Legend)
}

func TestRender_SeriesColors(t *testing.T) {
	axis, series := sampleWindow()

	frame, err := NewRenderer().Render(axis, series[:1], Options{}, TermSize{Cols: 80, Rows: 24})
	require.NoError(t, err)

	for _, line := range strings.Split(frame.Chart, "\n") {
		for _, run := range Tokenize(line) {
			if strings.ContainsFunc(run.Text, isBraille) {
				assert.Equal(t, BrightCyan, run.Color)
			}
		}
	}
}

func isBraille(r rune) bool {
	return r > brailleBase && r <= brailleBase+0xff
}

func TestRender_Idempotent(t *testing.T) {
	axis, series := sampleWindow()
	opts := Options{Title: "cpu", YLabel: "%", Panel: true}
	term := TermSize{Cols: 120, Rows: 40}

	r := NewRenderer()
	first, err := r.Render(axis, series, opts, term)
	require.NoError(t, err)
	second, err := r.Render(axis, series, opts, term)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_Precision(t *testing.T) {
	axis := sar.TimeAxis{clock(1, 0, 0), clock(2, 0, 0)}

	tests := []struct {
		name    string
		values  []float64
		wantTop string
	}{
		{name: "9999 keeps decimals", values: []float64{1, 9999}, wantTop: "   9999.00 | "},
		{name: "10000 drops decimals", values: []float64{1, 10000}, wantTop: "     10000 | "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := NewRenderer().Render(axis, []sar.Series{{Name: "kb", Values: tt.values}}, Options{}, TermSize{Cols: 80, Rows: 24})
			require.NoError(t, err)
			lines := strings.Split(Strip(frame.Chart), "\n")
			assert.True(t, strings.HasPrefix(lines[1], tt.wantTop), lines[1])
		})
	}
}

func TestRender_YMaxOverride(t *testing.T) {
	axis, series := sampleWindow()

	frame, err := NewRenderer().Render(axis, series, Options{YMax: 100}, TermSize{Cols: 80, Rows: 24})
	require.NoError(t, err)
	lines := strings.Split(Strip(frame.Chart), "\n")
	assert.True(t, strings.HasPrefix(lines[1], "    100.00 | "), lines[1])
}

func TestXDomain(t *testing.T) {
	tests := []struct {
		name    string
		axis    sar.TimeAxis
		wantMin time.Time
		wantMax time.Time
	}{
		{
			name:    "observed range",
			axis:    sar.TimeAxis{clock(9, 0, 0), clock(10, 0, 0)},
			wantMin: clock(9, 0, 0),
			wantMax: clock(10, 0, 0),
		},
		{
			name:    "exactly 23 hours keeps observed range",
			axis:    sar.TimeAxis{clock(0, 30, 0), clock(23, 30, 0)},
			wantMin: clock(0, 30, 0),
			wantMax: clock(23, 30, 0),
		},
		{
			name:    "over 23 hours shows the full day",
			axis:    sar.TimeAxis{clock(0, 30, 0), clock(23, 30, 1)},
			wantMin: clock(0, 0, 0),
			wantMax: clock(0, 0, 0).Add(24 * time.Hour),
		},
		{
			name:    "unordered samples",
			axis:    sar.TimeAxis{clock(12, 0, 0), clock(8, 0, 0), clock(10, 0, 0)},
			wantMin: clock(8, 0, 0),
			wantMax: clock(12, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := XDomain(tt.axis)
			assert.Equal(t, tt.wantMin, lo)
			assert.Equal(t, tt.wantMax, hi)
		})
	}
}

func TestYMax(t *testing.T) {
	series := []sar.Series{{Name: "a", Values: []float64{1, 7}}, {Name: "b", Values: []float64{3}}}

	assert.Equal(t, 7.0, YMax(series, 0))
	assert.Equal(t, 50.0, YMax(series, 50))
	assert.Equal(t, 1.0, YMax([]sar.Series{{Name: "z", Values: []float64{0, 0}}}, 0))
}

func TestRender_Errors(t *testing.T) {
	axis, series := sampleWindow()
	r := NewRenderer()

	_, err := r.Render(nil, series, Options{}, TermSize{Cols: 80, Rows: 24})
	assert.True(t, errors.IsCode(err, errors.ErrNoData))

	_, err = r.Render(axis, []sar.Series{{Name: "short", Values: []float64{1}}}, Options{}, TermSize{Cols: 80, Rows: 24})
	assert.True(t, errors.IsCode(err, errors.ErrNoData))
}

type fixedLabels struct{}

func (fixedLabels) Label(float64, float64) string { return "       lbl" }

func TestRender_CustomFormatters(t *testing.T) {
	axis, series := sampleWindow()

	r := NewRenderer(
		WithLabelFormatter(fixedLabels{}),
		WithTickFormatter(ClockTicks{Layout: "15h04", Width: TickLabelWidth}),
		WithPalette([]ColorIdentity{Red}),
	)
	frame, err := r.Render(axis, series, Options{NoLegend: true}, TermSize{Cols: 80, Rows: 24})
	require.NoError(t, err)

	chart := Strip(frame.Chart)
	assert.Contains(t, chart, "       lbl | ")
	assert.Contains(t, chart, "10h00")
	assert.Contains(t, frame.Chart, Marker(Red))
	assert.NotContains(t, frame.Chart, Marker(BrightCyan))
}

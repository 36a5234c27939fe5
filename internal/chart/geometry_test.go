package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeGeometry(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		series int
		yMax   float64
		term   TermSize
		want   Geometry
	}{
		{
			name:   "plain terminal without legend",
			series: 2,
			yMax:   100,
			term:   TermSize{Cols: 80, Rows: 24},
			want:   Geometry{Width: 58, Height: 19, Precision: 2},
		},
		{
			name:   "title takes a row",
			opts:   Options{Title: "CPU"},
			series: 1,
			yMax:   100,
			term:   TermSize{Cols: 80, Rows: 24},
			want:   Geometry{Width: 58, Height: 18, Precision: 2},
		},
		{
			name:   "inline legend costs one row per series plus borders",
			series: 3,
			yMax:   100,
			term:   TermSize{Cols: 100, Rows: 30},
			want:   Geometry{Width: 78, Height: 21, Precision: 2, ShowLegend: true},
		},
		{
			name:   "panel legend is an overlay",
			opts:   Options{Panel: true},
			series: 3,
			yMax:   100,
			term:   TermSize{Cols: 100, Rows: 30},
			want:   Geometry{Width: 78, Height: 25, Precision: 2, ShowLegend: true},
		},
		{
			name:   "overrides replace terminal size",
			opts:   Options{Width: 40, Height: 15},
			series: 1,
			yMax:   20000,
			term:   TermSize{Cols: 200, Rows: 60},
			want:   Geometry{Width: 18, Height: 10, Precision: 0},
		},
		{
			name:   "tiny terminal floors at minimum",
			series: 1,
			yMax:   1,
			term:   TermSize{Cols: 10, Rows: 6},
			want:   Geometry{Width: MinChartSize, Height: MinChartSize, Precision: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeGeometry(tt.opts, tt.series, tt.yMax, tt.term))
		})
	}
}

func TestShowLegend(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		series int
		rows   int
		want   bool
	}{
		{name: "two series never auto show", series: 2, rows: 50, want: false},
		{name: "three series on tall terminal", series: 3, rows: LegendMinRows, want: true},
		{name: "three series on short terminal", series: 3, rows: LegendMinRows - 1, want: false},
		{name: "panel always shows", opts: Options{Panel: true}, series: 1, rows: 5, want: true},
		{name: "suppressed", opts: Options{Panel: true, NoLegend: true}, series: 5, rows: 50, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShowLegend(tt.opts, tt.series, tt.rows))
		})
	}
}

func TestPrecision(t *testing.T) {
	assert.Equal(t, 2, Precision(9999))
	assert.Equal(t, 0, Precision(10000))
	assert.Equal(t, 2, Precision(0.5))
}

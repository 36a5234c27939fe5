package chart

import "time"

// Layout tuning constants. These are empirical and shape every frame.
const (
	// YLabelWidth is the width of the right-aligned y-axis labels.
	YLabelWidth = 10
	// WidthMargin is the horizontal space for axis borders beyond the labels.
	WidthMargin = 12
	// HeightMargin covers the y-label header, x axis, tick row and prompt.
	HeightMargin = 4
	// MinChartSize floors both chart dimensions, in cells.
	MinChartSize = 5
	// PrecisionThreshold is the largest y maximum still labelled with decimals.
	PrecisionThreshold = 9999
	// LegendMinRows is the terminal height needed for an automatic legend.
	LegendMinRows = 14
	// FullDaySpan is the x span beyond which a whole calendar day is shown.
	FullDaySpan = 23 * time.Hour
	// TickLabelWidth is the padded width of one x tick label.
	TickLabelWidth = 7
	// TickSpacing is the distance between x tick labels, in cells.
	TickSpacing = 8
)

// TermSize is the terminal size in character cells.
type TermSize struct {
	Cols int
	Rows int
}

// Options are the display settings a render needs.
// Zero values mean "not set".
type Options struct {
	Title    string
	Width    int
	Height   int
	YLabel   string
	YMax     float64
	NoLegend bool
	Panel    bool
}

// Geometry is derived per render and never cached across resizes.
type Geometry struct {
	Width      int
	Height     int
	Precision  int
	ShowLegend bool
}

// ShowLegend decides legend visibility. Panel mode always shows one;
// otherwise a legend appears for more than two series on a tall terminal.
func ShowLegend(opts Options, seriesCount, rows int) bool {
	if opts.NoLegend {
		return false
	}
	return opts.Panel || (seriesCount > 2 && rows >= LegendMinRows)
}

// Precision returns the number of label decimals for a y maximum.
func Precision(yMax float64) int {
	if yMax > PrecisionThreshold {
		return 0
	}
	return 2
}

// ComputeGeometry sizes the chart for the terminal. Width and Height
// overrides replace the terminal dimensions before margins are applied.
func ComputeGeometry(opts Options, seriesCount int, yMax float64, term TermSize) Geometry {
	cols := term.Cols
	if opts.Width > 0 {
		cols = opts.Width
	}
	rows := term.Rows
	if opts.Height > 0 {
		rows = opts.Height
	}

	g := Geometry{
		Precision:  Precision(yMax),
		ShowLegend: ShowLegend(opts, seriesCount, term.Rows),
	}

	g.Width = max(MinChartSize, cols-YLabelWidth-WidthMargin)

	height := rows - HeightMargin
	if opts.Title != "" {
		height--
	}
	if g.ShowLegend && !opts.Panel {
		// one row per entry plus a blank separator and the trailing prompt
		height -= seriesCount + 2
	} else {
		height--
	}
	g.Height = max(MinChartSize, height)

	return g
}

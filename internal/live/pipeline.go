package live

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchart/sarchart/internal/chart"
	"github.com/sarchart/sarchart/internal/logger"
	"github.com/sarchart/sarchart/internal/sar"
	"github.com/sarchart/sarchart/internal/util"
)

// Pipeline turns raw report lines into a frame: extract, select, build,
// derive, render.
type Pipeline struct {
	Filters  sar.Filters
	Include  []string
	Exclude  []string
	Derive   []sar.Derivation
	Options  chart.Options
	Renderer *chart.Renderer
	// TermSize is read on every render so geometry follows resizes.
	TermSize func() chart.TermSize
	// Dump receives every extracted report as tab-joined rows.
	Dump io.Writer
}

// Result is one rendered window.
type Result struct {
	Axis   sar.TimeAxis
	Series []sar.Series
	Frame  chart.Frame
}

// Extract normalizes raw lines with the pipeline's filters.
func (p Pipeline) Extract(lines []string) (*sar.Report, error) {
	report, err := sar.Extract(lines, p.Filters)
	if err != nil {
		return nil, err
	}
	if p.Dump != nil {
		fmt.Fprintf(p.Dump, "Filtered:\n%s\n", strings.Join(report.Lines(), "\n"))
	}
	return report, nil
}

// Render builds series from the report and renders them.
func (p Pipeline) Render(report *sar.Report) (Result, error) {
	columns := sar.SelectColumns(report.Header, p.Include, p.Exclude)
	axis, series, err := sar.BuildSeries(report, columns)
	if err != nil {
		return Result{}, err
	}
	series, err = sar.Derive(series, p.Derive)
	if err != nil {
		return Result{}, err
	}

	renderer := p.Renderer
	if renderer == nil {
		renderer = chart.NewRenderer()
	}
	term := chart.TermSize{}
	if p.TermSize != nil {
		term = p.TermSize()
	}

	frame, err := renderer.Render(axis, series, p.Options, term)
	if err != nil {
		return Result{}, err
	}
	return Result{Axis: axis, Series: series, Frame: frame}, nil
}

// WarnUnknownColumns logs include/exclude names missing from the header,
// with the closest real column when there is one.
func (p Pipeline) WarnUnknownColumns(report *sar.Report, log logger.Logger) {
	names := append(append([]string(nil), p.Include...), p.Exclude...)
	candidates := report.Header[1:]
	for _, name := range sar.UnknownColumns(report.Header, names) {
		if similar := util.SuggestSimilar(name, candidates, 1); len(similar) > 0 {
			log.Warn("column %q is not in the report, did you mean %q?", name, similar[0])
			continue
		}
		log.Warn("column %q is not in the report (columns: %s)", name, util.JoinOrNone(candidates))
	}
}

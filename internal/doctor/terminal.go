package doctor

import (
	"context"

	"github.com/sarchart/sarchart/internal/chart"
)

// TerminalCheck warns when the terminal leaves only a minimal chart.
type TerminalCheck struct {
	Size func() chart.TermSize
}

func (c *TerminalCheck) Name() string     { return "terminal_size" }
func (c *TerminalCheck) Category() string { return CategoryTerminal }

func (c *TerminalCheck) Run(ctx context.Context) CheckResult {
	term := c.Size()
	g := chart.ComputeGeometry(chart.Options{}, 1, 0, term)
	if g.Width <= chart.MinChartSize || g.Height <= chart.MinChartSize {
		return warn("Enlarge the window, or pass --width and --height.",
			"Terminal is %dx%d, charts will be %dx%d cells", term.Cols, term.Rows, g.Width, g.Height)
	}
	return pass("Terminal is %dx%d, charts will be %dx%d cells", term.Cols, term.Rows, g.Width, g.Height)
}

package ui

import (
	"os"
	"strconv"

	"github.com/sarchart/sarchart/internal/chart"
	"golang.org/x/term"
)

// Fallback dimensions when neither the terminal nor the environment
// reports a size.
const (
	DefaultCols = 80
	DefaultRows = 24
)

// IsTerminal returns true if the file is a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TermSize reports the size of the terminal attached to f. COLUMNS and
// LINES are consulted when f is not a terminal, then the 80x24 default.
func TermSize(f *os.File) chart.TermSize {
	if cols, rows, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 && rows > 0 {
		return chart.TermSize{Cols: cols, Rows: rows}
	}
	return chart.TermSize{
		Cols: envDimension("COLUMNS", DefaultCols),
		Rows: envDimension("LINES", DefaultRows),
	}
}

// TermSizeFunc returns a provider that re-reads the size on every call,
// so each render follows resizes.
func TermSizeFunc(f *os.File) func() chart.TermSize {
	return func() chart.TermSize { return TermSize(f) }
}

func envDimension(name string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

package screen

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sarchart/sarchart/internal/chart"
	"github.com/sarchart/sarchart/internal/errors"
)

// Color modes for the print path.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Printer writes frames as plain text. Color markers are either re-styled
// for the output's color profile or stripped.
type Printer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
}

// NewPrinter creates a printer for out. mode is one of ColorAuto,
// ColorAlways or ColorNever; empty means ColorAuto.
func NewPrinter(out io.Writer, mode string) (*Printer, error) {
	r := lipgloss.NewRenderer(out)
	switch mode {
	case "", ColorAuto:
	case ColorAlways:
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI)
		}
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown color mode %q", mode),
			"Use --color auto, always or never.")
	}
	return &Printer{out: out, renderer: r}, nil
}

// Colored reports whether output keeps colors.
func (p *Printer) Colored() bool {
	return p.renderer.ColorProfile() != termenv.Ascii
}

// Print writes the optional title, the chart and the legend, if any.
func (p *Printer) Print(title string, frame chart.Frame) error {
	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
	}
	b.WriteString(p.Style(frame.Chart))
	b.WriteByte('\n')
	if frame.Legend != "" {
		b.WriteString(p.Style(frame.Legend))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(p.out, b.String())
	return err
}

// Style converts marked-up text for this printer's color profile.
func (p *Printer) Style(block string) string {
	if !p.Colored() {
		return chart.Strip(block)
	}

	lines := strings.Split(block, "\n")
	for i, line := range lines {
		var b strings.Builder
		for _, run := range chart.Tokenize(line) {
			idx := run.Color.Index()
			if idx < 0 {
				b.WriteString(run.Text)
				continue
			}
			style := p.renderer.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(idx)))
			b.WriteString(style.Render(run.Text))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

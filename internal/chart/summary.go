package chart

import (
	"fmt"
	"strings"

	"github.com/sarchart/sarchart/internal/sar"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats summarizes one series over the rendered window.
type Stats struct {
	Name string
	Min  float64
	Avg  float64
	Max  float64
	Last float64
}

// Summarize computes per-series statistics. Empty series are skipped.
func Summarize(series []sar.Series) []Stats {
	var stats []Stats
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		st := Stats{Name: s.Name, Min: s.Values[0], Max: s.Values[0], Last: s.Values[len(s.Values)-1]}
		sum := 0.0
		for _, v := range s.Values {
			st.Min = min(st.Min, v)
			st.Max = max(st.Max, v)
			sum += v
		}
		st.Avg = sum / float64(len(s.Values))
		stats = append(stats, st)
	}
	return stats
}

// FormatSummary renders stats as aligned lines with thousands separators,
// using the same precision rule as the y-axis labels.
func FormatSummary(stats []Stats) string {
	if len(stats) == 0 {
		return ""
	}

	nameWidth := len("series")
	top := 0.0
	for _, st := range stats {
		nameWidth = max(nameWidth, len([]rune(st.Name)))
		top = max(top, st.Max)
	}
	prec := Precision(top)

	// use printer to get commas at thousands, e.g. 1,234,567.00
	p := message.NewPrinter(language.English)
	head := fmt.Sprintf("%%-%ds %%14s %%14s %%14s %%14s", nameWidth)
	row := fmt.Sprintf("%%-%ds %%14.%[2]df %%14.%[2]df %%14.%[2]df %%14.%[2]df", nameWidth, prec)

	lines := []string{p.Sprintf(head, "series", "min", "avg", "max", "last")}
	for _, st := range stats {
		lines = append(lines, p.Sprintf(row, st.Name, st.Min, st.Avg, st.Max, st.Last))
	}
	return strings.Join(lines, "\n")
}

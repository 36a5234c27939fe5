package sar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/sarchart/sarchart/internal/errors"
)

// timeLayouts are the accepted time-of-day formats, tried in order.
var timeLayouts = []string{"15:04:05", "15:04"}

// numberPattern finds the first signed integer or decimal in a cell.
var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// TimeAxis holds the sample timestamps of one window.
type TimeAxis []time.Time

// Series is one metric column converted to numbers.
type Series struct {
	Name   string
	Values []float64
}

// ParseTime parses a time-of-day field.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrMalformedTime,
		fmt.Sprintf("Time value %q does not match any supported format", value),
		"Expected HH:MM:SS or HH:MM. Is sar running with LC_ALL=C?")
}

// ExtractNumber returns the first number found in s, ignoring units and
// other surrounding text.
func ExtractNumber(s string) (float64, bool) {
	match := numberPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// BuildSeries converts report rows into a time axis and one series per
// selected column. The active discriminator column only names the entity
// and is never plotted. A column with a single cell lacking a number is
// dropped entirely, so every returned series has exactly len(axis) values.
func BuildSeries(report *Report, columns []string) (TimeAxis, []Series, error) {
	if report == nil || len(report.Rows) == 0 {
		return nil, nil, errors.New(errors.ErrNoData, "No data matches",
			"Widen the --start/--end window or relax the filters.")
	}

	index := make(map[string]int, len(report.Header))
	for i, name := range report.Header {
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var metrics []string
	for _, name := range columns {
		if name == TimeColumn || name == report.Discriminator {
			continue
		}
		if _, ok := index[name]; ok {
			metrics = append(metrics, name)
		}
	}

	axis := make(TimeAxis, 0, len(report.Rows))
	values := make([][]float64, len(metrics))
	nonNumeric := make([]bool, len(metrics))

	for _, row := range report.Rows {
		t, err := ParseTime(row[0])
		if err != nil {
			return nil, nil, err
		}
		axis = append(axis, t)

		for m, name := range metrics {
			if nonNumeric[m] {
				continue
			}
			col := index[name]
			if col >= len(row) {
				nonNumeric[m] = true
				continue
			}
			v, ok := ExtractNumber(row[col])
			if !ok {
				nonNumeric[m] = true
				continue
			}
			values[m] = append(values[m], v)
		}
	}

	var series []Series
	for m, name := range metrics {
		if nonNumeric[m] {
			continue
		}
		series = append(series, Series{Name: name, Values: values[m]})
	}

	if len(series) == 0 {
		return nil, nil, errors.New(errors.ErrNoNumeric, "No numerical data left",
			"Every selected column had non-numeric cells. Check --include/--exclude.")
	}
	return axis, series, nil
}

package config

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"time"

	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/sar"
)

// Default window bounds: the whole day.
const (
	DefaultStart = "00:00:00"
	DefaultEnd   = "23:59:59"
)

// SamplesPerColumn is how many samples the interval hint aims to place in
// each chart column.
const SamplesPerColumn = 3

var agoMinutesPattern = regexp.MustCompile(`(?i)^(\d+)m$`)

// Window is the report window of the initial fetch.
type Window struct {
	Start string
	End   string
	// DayFile is the saDD file to read, empty for the current day.
	DayFile string
}

// Ago is a parsed --ago value: either whole days or minutes.
type Ago struct {
	Days    int
	Minutes int
}

// ParseAgo parses "N" (days back) or "Nm" (minutes back, today).
func ParseAgo(value string) (Ago, error) {
	if m := agoMinutesPattern.FindStringSubmatch(value); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err == nil {
			return Ago{Minutes: minutes}, nil
		}
	}
	days, err := strconv.Atoi(value)
	if err != nil || days < 0 {
		return Ago{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid --ago value %q", value),
			"Use a number of days (1 = yesterday) or minutes with an m suffix (15m).")
	}
	return Ago{Days: days}, nil
}

// Window resolves the time window relative to now. Without --ago the
// current day is read between Start and End. With --ago a day file under
// SaDir is selected; the minutes form also moves the window to the last N
// minutes.
func (c Configuration) Window(now time.Time) (Window, error) {
	w := Window{Start: c.Start, End: c.End}
	if w.Start == "" {
		w.Start = DefaultStart
	}
	if w.End == "" {
		w.End = DefaultEnd
	}
	if c.Ago == "" {
		return w, nil
	}

	ago, err := ParseAgo(c.Ago)
	if err != nil {
		return Window{}, err
	}
	if ago.Minutes > 0 {
		w.Start = now.Add(-time.Duration(ago.Minutes) * time.Minute).Format("15:04:05")
		w.End = now.Format("15:04:05")
	}

	saDir := c.SaDir
	if saDir == "" {
		saDir = DefaultSaDir
	}
	day := now.AddDate(0, 0, -ago.Days)
	w.DayFile = path.Join(saDir, fmt.Sprintf("sa%02d", day.Day()))
	return w, nil
}

// IntervalHint returns the sar -i value that spreads the window over
// SamplesPerColumn samples per chart column, or 0 for no hint.
func (w Window) IntervalHint(chartWidth int) (int, error) {
	start, err := sar.ParseTime(w.Start)
	if err != nil {
		return 0, err
	}
	end, err := sar.ParseTime(w.End)
	if err != nil {
		return 0, err
	}
	if chartWidth <= 0 {
		return 0, nil
	}
	interval := int(end.Sub(start).Seconds() / float64(chartWidth) / SamplesPerColumn)
	return max(interval, 0), nil
}

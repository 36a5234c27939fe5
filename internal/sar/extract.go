package sar

import (
	"strings"

	"github.com/sarchart/sarchart/internal/errors"
)

// TimeColumn is the canonical name given to the first header column.
const TimeColumn = "Time"

// headerLine is the index of the column-header line in sar output.
// Lines before it are the kernel banner and a blank separator.
const headerLine = 2

// summaryMarkers start lines that hold averages rather than samples.
var summaryMarkers = []string{"Average:", "Summary:"}

// Discriminator column names as printed by sar.
const (
	ColumnDev   = "DEV"
	ColumnIface = "IFACE"
	ColumnCPU   = "CPU"
)

// Filters selects rows of a single device, interface or processor.
// Only the filter matching the report's identity column takes effect.
type Filters struct {
	Dev   string
	Iface string
	CPU   string
}

// forColumn returns the filter value that applies to a discriminator column.
func (f Filters) forColumn(column string) string {
	switch column {
	case ColumnDev:
		return f.Dev
	case ColumnIface:
		return f.Iface
	case ColumnCPU:
		return f.CPU
	}
	return ""
}

// Any reports whether any filter is set.
func (f Filters) Any() bool {
	return f.Dev != "" || f.Iface != "" || f.CPU != ""
}

// Report is the normalized body of one sar invocation.
type Report struct {
	// Header holds column names; Header[0] is always TimeColumn.
	Header []string
	// Rows holds whitespace-split data rows in output order.
	Rows [][]string
	// Discriminator is the identity column used for filtering, if any.
	Discriminator string
}

// Lines renders the report as tab-joined rows, header first.
func (r *Report) Lines() []string {
	lines := make([]string, 0, len(r.Rows)+1)
	lines = append(lines, strings.Join(r.Header, "\t"))
	for _, row := range r.Rows {
		lines = append(lines, strings.Join(row, "\t"))
	}
	return lines
}

// Extract normalizes raw sar output into a Report.
//
// The first two lines are skipped, the third is the header. Summary lines,
// short lines, reboot markers and reprinted headers are dropped. Extraction stops at the
// rollover sentinel: the first data timestamp showing up again after the
// clock has moved on. When the header carries a DEV, IFACE or CPU column
// and the matching filter is set, only rows for that identity are kept.
func Extract(lines []string, filters Filters) (*Report, error) {
	if len(lines) <= headerLine {
		return nil, noDataError(filters)
	}

	header := strings.Fields(lines[headerLine])
	if len(header) < 2 {
		return nil, noDataError(filters)
	}
	header[0] = TimeColumn

	report := &Report{Header: header}
	filterValue := ""
	if value := filters.forColumn(header[1]); value != "" {
		report.Discriminator = header[1]
		filterValue = value
	}

	firstTime := ""
	clockMoved := false
	for i := headerLine + 1; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) < 2 || isSummary(fields[0]) || isRestart(fields) || isHeaderRepeat(fields, header) {
			continue
		}

		stamp := fields[0]
		if firstTime == "" {
			firstTime = stamp
		} else if stamp != firstTime {
			clockMoved = true
		} else if clockMoved {
			break
		}

		if filterValue != "" && fields[1] != filterValue {
			continue
		}
		report.Rows = append(report.Rows, fields)
	}

	if len(report.Rows) == 0 {
		return nil, noDataError(filters)
	}
	return report, nil
}

func isSummary(first string) bool {
	for _, marker := range summaryMarkers {
		if first == marker {
			return true
		}
	}
	return false
}

// isRestart matches the "HH:MM:SS LINUX RESTART (N CPU)" marker sadc
// writes into a day file after a reboot.
func isRestart(fields []string) bool {
	return len(fields) >= 3 && fields[1] == "LINUX" && fields[2] == "RESTART"
}

// isHeaderRepeat matches the column-name lines sar prints per interval block.
func isHeaderRepeat(fields, header []string) bool {
	if len(fields) != len(header) {
		return false
	}
	for i := 1; i < len(fields); i++ {
		if fields[i] != header[i] {
			return false
		}
	}
	return true
}

func noDataError(filters Filters) error {
	suggestion := "Missing --dev, --iface or --cpu? Multi-entity reports need one of them."
	if filters.Any() {
		suggestion = "Check the --dev/--iface/--cpu value matches an entity in the report."
	}
	return errors.New(errors.ErrNoData, "No data found in sar output", suggestion)
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a non-focused Bubbles table with the default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.Foreground(ColorPrimary)
	// nothing is focused, so the cursor row must not stand out
	s.Selected = s.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}
	return NewTable(columns, tableRows).View()
}

// RenderPresetTable lists presets with their sar arguments. Column
// widths follow the content, capped at maxColumnWidth.
func RenderPresetTable(presets []PresetInfo) string {
	if len(presets) == 0 {
		return "No presets defined"
	}

	columns := []TableColumn{
		{Title: "PRESET"},
		{Title: "SAR ARGS"},
		{Title: "DESCRIPTION"},
	}
	rows := make([][]string, len(presets))
	for i, p := range presets {
		rows[i] = []string{p.Name, strings.Join(p.SarArgs, " "), p.Description}
	}

	for c := range columns {
		width := lipgloss.Width(columns[c].Title)
		for _, row := range rows {
			width = max(width, lipgloss.Width(row[c]))
		}
		columns[c].Width = min(width+2, maxColumnWidth)
	}

	return RenderSimpleTable(columns, rows)
}

const maxColumnWidth = 48

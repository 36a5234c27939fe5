// Package cli implements the sarchart command-line interface.
//
// The root command is the chart itself:
//
//	sarchart [flags] [-- sar arguments]
//	sarchart presets list|pick|add
//	sarchart doctor [--host H] [--json]
//	sarchart version
//	sarchart completion <shell>
//
// A chart run resolves flags over the selected preset over the config
// file defaults (see internal/config), opens a data source (a saved
// report, an SSH host or the local sar binary) and hands everything to a
// live.Controller. Output goes to the tcell panel with --panel, otherwise
// frames are printed.
//
// Fatal errors are printed by Execute in the structured errors format and
// exit with status 1.
package cli

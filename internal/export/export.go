// Package export writes the last rendered window to a JSON or XLSX file.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sarchart/sarchart/internal/chart"
	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/logger"
	"github.com/sarchart/sarchart/internal/sar"
)

// Format is an export file format, chosen by file extension.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// timeLayout renders sample timestamps in exported files.
const timeLayout = "15:04:05"

// FormatFor picks the format from the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", errors.New(errors.ErrExport,
		fmt.Sprintf("Can't tell the export format of '%s'", path),
		"Use a .json or .xlsx file name.")
}

// Snapshot is one rendered window.
type Snapshot struct {
	Title  string
	Host   string
	Taken  time.Time
	Axis   sar.TimeAxis
	Series []sar.Series
}

// Encode renders the snapshot in the given format.
func Encode(format Format, snap Snapshot) ([]byte, error) {
	if len(snap.Axis) == 0 || len(snap.Series) == 0 {
		return nil, errors.New(errors.ErrExport, "Nothing to export",
			"The chart never rendered any data.")
	}
	for _, s := range snap.Series {
		if len(s.Values) != len(snap.Axis) {
			return nil, errors.New(errors.ErrExport,
				fmt.Sprintf("Series %s has %d samples for %d timestamps", s.Name, len(s.Values), len(snap.Axis)),
				"")
		}
	}

	switch format {
	case FormatJSON:
		return encodeJSON(snap)
	case FormatXLSX:
		return encodeXLSX(snap)
	}
	return nil, errors.New(errors.ErrExport,
		fmt.Sprintf("Unsupported export format '%s'", format),
		"Use a .json or .xlsx file name.")
}

// Write encodes the snapshot by the extension of path and writes it.
func Write(path string, snap Snapshot, log logger.Logger) error {
	if log == nil {
		log = logger.Noop()
	}

	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, snap)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.WrapWithCode(err, errors.ErrExport,
				"Can't create export directory "+dir,
				"Check permissions, or pick another --export path.")
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrExport,
			"Can't write "+path,
			"Check permissions, or pick another --export path.")
	}

	log.Info("exported %d samples of %d series to %s (%s)",
		len(snap.Axis), len(snap.Series), path, humanize.Bytes(uint64(len(data))))
	return nil
}

func stats(snap Snapshot) []chart.Stats {
	return chart.Summarize(snap.Series)
}

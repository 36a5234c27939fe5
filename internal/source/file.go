package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sarchart/sarchart/internal/errors"
)

// FileSource replays a saved sar text report. It has no notion of time
// windows, so every query returns the whole file and live queries fail.
type FileSource struct {
	path string
	in   io.Reader
}

// NewFileSource reads path on each fetch; "-" reads stdin once.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, in: os.Stdin}
}

// Fetch implements DataSource.
func (s *FileSource) Fetch(ctx context.Context, q Query) ([]string, error) {
	if q.IsLive() {
		return nil, errors.New(errors.ErrConfig, "A saved report can't be refreshed",
			"Drop --refresh when using --input.")
	}

	var data []byte
	var err error
	if s.path == "-" {
		data, err = io.ReadAll(s.in)
	} else {
		data, err = os.ReadFile(s.path)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSourceUnavailable,
			fmt.Sprintf("Can't read %s", s.path),
			"Save a report with: LC_ALL=C sar -A > report.txt")
	}
	return splitLines(data), nil
}

// Close implements DataSource.
func (s *FileSource) Close() error {
	return nil
}

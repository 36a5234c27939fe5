// Package source fetches raw sar output from the local machine, a remote
// host over SSH, or a saved report file.
package source

import (
	"context"
	"strconv"
	"strings"
)

// DefaultBinary is the sysstat reporting command.
const DefaultBinary = "sar"

// sarEnv forces 24-hour timestamps and C number formatting.
var sarEnv = []string{"LC_ALL=C"}

// DataSource produces raw report lines for one query.
type DataSource interface {
	Fetch(ctx context.Context, q Query) ([]string, error)
	Close() error
}

// Query selects the report window appended to the base sar arguments.
// A live query (LiveSeconds > 0) asks for fresh samples and ignores the
// window fields.
type Query struct {
	Start       string
	End         string
	Interval    int
	DayFile     string
	LiveSeconds int
	LiveCount   int
}

// Live returns a query for count fresh samples taken seconds apart.
func Live(seconds, count int) Query {
	return Query{LiveSeconds: seconds, LiveCount: count}
}

// IsLive reports whether q asks for fresh samples.
func (q Query) IsLive() bool {
	return q.LiveSeconds > 0
}

// Args renders the query as sar arguments.
func (q Query) Args() []string {
	if q.IsLive() {
		count := max(q.LiveCount, 1)
		return []string{strconv.Itoa(q.LiveSeconds), strconv.Itoa(count)}
	}

	var args []string
	if q.DayFile != "" {
		args = append(args, "-f", q.DayFile)
	}
	if q.Start != "" {
		args = append(args, "-s", q.Start)
	}
	if q.End != "" {
		args = append(args, "-e", q.End)
	}
	if q.Interval > 0 {
		args = append(args, "-i", strconv.Itoa(q.Interval))
	}
	return args
}

// commandLine is the full argv for one fetch.
func commandLine(binary string, base []string, q Query) []string {
	argv := append([]string{binary}, base...)
	return append(argv, q.Args()...)
}

// splitLines splits command output into lines without the final newline.
func splitLines(out []byte) []string {
	text := strings.ReplaceAll(string(out), "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Package doctor runs environment checks for sarchart: config file,
// sar availability, sysstat day files and terminal size, locally or on an
// SSH host.
package doctor

import (
	"context"
	"fmt"

	"github.com/sarchart/sarchart/internal/chart"
	"github.com/sarchart/sarchart/internal/util"
)

// CheckStatus represents the result status of a check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

// String returns a human-readable status string.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText makes JSON output carry the status name.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Check categories, in display order.
const (
	CategoryConfig   = "CONFIG"
	CategorySar      = "SAR"
	CategorySSH      = "SSH"
	CategoryTerminal = "TERMINAL"
)

// Categories lists the categories in display order.
var Categories = []string{CategoryConfig, CategorySSH, CategorySar, CategoryTerminal}

// CheckResult contains the outcome of running a check.
type CheckResult struct {
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Check is one diagnostic.
type Check interface {
	// Name returns the check's identifier.
	Name() string

	// Category returns the check's category, e.g. CategorySar.
	Category() string

	// Run executes the check.
	Run(ctx context.Context) CheckResult
}

// Options select the checks NewChecks builds.
type Options struct {
	ConfigPath string
	// Host switches the sar checks to an SSH host.
	Host  string
	SaDir string
	Dial  Dialer
	Size  func() chart.TermSize
}

// NewChecks returns the checks for opts in display order, plus the shared
// connection when a host is set. The caller closes the connection.
func NewChecks(opts Options) ([]Check, *Connection) {
	checks := []Check{&ConfigCheck{ConfigPath: opts.ConfigPath}}

	var conn *Connection
	if opts.Host != "" {
		conn = &Connection{Host: opts.Host, Dial: opts.Dial}
		checks = append(checks,
			&SSHCheck{Conn: conn},
			&RemoteSarCheck{Conn: conn},
			&RemoteSaDirCheck{Conn: conn, Dir: opts.SaDir},
		)
	} else {
		checks = append(checks,
			&LocalSarCheck{},
			&SaDirCheck{Dir: opts.SaDir},
		)
	}

	if opts.Size != nil {
		checks = append(checks, &TerminalCheck{Size: opts.Size})
	}
	return checks, conn
}

// RunAll executes checks in order. Later remote checks reuse the SSH
// connection opened by earlier ones, so they are not run in parallel.
func RunAll(ctx context.Context, checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))
	for i, check := range checks {
		r := check.Run(ctx)
		r.Name = check.Name()
		r.Category = check.Category()
		results[i] = r
	}
	return results
}

// CountByStatus counts results by status.
func CountByStatus(results []CheckResult) map[CheckStatus]int {
	counts := make(map[CheckStatus]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

// HasFailures returns true if any result has a fail status.
func HasFailures(results []CheckResult) bool {
	return CountByStatus(results)[StatusFail] > 0
}

// HasIssues returns true if any result has a fail or warn status.
func HasIssues(results []CheckResult) bool {
	counts := CountByStatus(results)
	return counts[StatusFail]+counts[StatusWarn] > 0
}

// Summary returns a one-line summary of the results.
func Summary(results []CheckResult) string {
	if !HasIssues(results) {
		return "Everything looks good"
	}
	counts := CountByStatus(results)
	total := counts[StatusWarn] + counts[StatusFail]
	return fmt.Sprintf("%d %s found", total, util.Pluralize(total, "issue", "issues"))
}

func pass(format string, args ...any) CheckResult {
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf(format, args...)}
}

func warn(suggestion, format string, args ...any) CheckResult {
	return CheckResult{Status: StatusWarn, Message: fmt.Sprintf(format, args...), Suggestion: suggestion}
}

func fail(suggestion, format string, args ...any) CheckResult {
	return CheckResult{Status: StatusFail, Message: fmt.Sprintf(format, args...), Suggestion: suggestion}
}

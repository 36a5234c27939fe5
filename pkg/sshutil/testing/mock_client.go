// Package testing provides an in-memory SSH client for tests.
package testing

import (
	"context"
	"errors"
	"regexp"
	"sync"

	"github.com/sarchart/sarchart/pkg/sshutil"
)

// CommandResponse defines a canned response for a specific command pattern.
type CommandResponse struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Error    error
}

// MockClient answers commands from canned responses and records every
// command it was asked to run.
type MockClient struct {
	mu       sync.Mutex
	host     string
	closed   bool
	exact    map[string]CommandResponse
	patterns []patternResponse
	calls    []string
}

type patternResponse struct {
	re   *regexp.Regexp
	resp CommandResponse
}

var _ sshutil.SSHClient = (*MockClient)(nil)

// NewMockClient creates a mock client for host.
func NewMockClient(host string) *MockClient {
	return &MockClient{host: host, exact: make(map[string]CommandResponse)}
}

// SetCommandResponse answers cmd exactly with resp.
func (m *MockClient) SetCommandResponse(cmd string, resp CommandResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exact[cmd] = resp
}

// SetPatternResponse answers commands matching pattern with resp.
// Patterns are tried in the order they were added.
func (m *MockClient) SetPatternResponse(pattern string, resp CommandResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, patternResponse{re: regexp.MustCompile(pattern), resp: resp})
}

// ExecContext returns the canned response for cmd. Unknown commands exit
// 127 like a shell would.
func (m *MockClient) ExecContext(ctx context.Context, cmd string) (stdout, stderr []byte, exitCode int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, nil, -1, err
	}
	if m.closed {
		return nil, nil, -1, errors.New("connection closed")
	}
	m.calls = append(m.calls, cmd)

	if resp, ok := m.exact[cmd]; ok {
		return resp.Stdout, resp.Stderr, resp.ExitCode, resp.Error
	}
	for _, p := range m.patterns {
		if p.re.MatchString(cmd) {
			return p.resp.Stdout, p.resp.Stderr, p.resp.ExitCode, p.resp.Error
		}
	}
	return nil, []byte("bash: " + cmd + ": command not found"), 127, nil
}

// Close marks the client closed.
func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// GetHost returns the host the mock was created for.
func (m *MockClient) GetHost() string {
	return m.host
}

// Calls returns the commands run so far.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// IsClosed reports whether Close was called.
func (m *MockClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Package testing provides a scripted DataSource for tests.
package testing

import (
	"context"
	"sync"

	"github.com/sarchart/sarchart/internal/source"
)

// Response is one scripted fetch result.
type Response struct {
	Lines []string
	Err   error
	// Block makes the fetch wait for context cancellation.
	Block bool
}

// FakeSource replays responses in order; the last one repeats.
type FakeSource struct {
	mu        sync.Mutex
	responses []Response
	queries   []source.Query
	closed    bool
}

var _ source.DataSource = (*FakeSource)(nil)

// NewFakeSource creates a fake returning responses in order.
func NewFakeSource(responses ...Response) *FakeSource {
	return &FakeSource{responses: responses}
}

// Fetch implements source.DataSource.
func (f *FakeSource) Fetch(ctx context.Context, q source.Query) ([]string, error) {
	f.mu.Lock()
	idx := len(f.queries)
	f.queries = append(f.queries, q)
	var resp Response
	if n := len(f.responses); n > 0 {
		resp = f.responses[min(idx, n-1)]
	}
	f.mu.Unlock()

	if resp.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), resp.Lines...), resp.Err
}

// Close implements source.DataSource.
func (f *FakeSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Queries returns the queries seen so far.
func (f *FakeSource) Queries() []source.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]source.Query(nil), f.queries...)
}

// Closed reports whether Close was called.
func (f *FakeSource) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

package live

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sarchart/sarchart/internal/chart"
	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/logger"
	"github.com/sarchart/sarchart/internal/sar"
	"github.com/sarchart/sarchart/internal/source"
	sourcetest "github.com/sarchart/sarchart/internal/source/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const banner = "Linux 6.1.0 (web01) \t10/18/2026 \t_x86_64_\t(8 CPU)"

func sarOutput(lines ...string) []string {
	return append([]string{banner, ""}, lines...)
}

func initialLines() []string {
	return sarOutput(
		"10:00:00        CPU     %user     %system",
		"10:00:10        all      12.5      3.0",
		"10:00:20        all      13.0      4.0",
		"10:00:30        all      11.0      2.0",
		"Average:        all      12.2      3.0",
	)
}

func liveSample(stamp string) []string {
	return sarOutput(
		"10:00:00        CPU     %user     %system",
		stamp+"        all      20.0      5.0",
		"",
		"Average:        all      20.0      5.0",
	)
}

// fakeOutput records frames and replays scripted paint errors.
type fakeOutput struct {
	mu     sync.Mutex
	frames []chart.Frame
	errs   []error
	calls  int
	hook   func(call int)
}

func (o *fakeOutput) Paint(frame chart.Frame) error {
	o.mu.Lock()
	o.calls++
	call := o.calls
	var err error
	if len(o.errs) > 0 {
		err, o.errs = o.errs[0], o.errs[1:]
	}
	if err == nil {
		o.frames = append(o.frames, frame)
	}
	hook := o.hook
	o.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	return err
}

func (o *fakeOutput) Frames() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.frames)
}

func (o *fakeOutput) Calls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

func testPipeline() Pipeline {
	return Pipeline{
		Filters:  sar.Filters{CPU: "all"},
		Options:  chart.Options{Title: "CPU"},
		Renderer: chart.NewRenderer(),
		TermSize: func() chart.TermSize { return chart.TermSize{Cols: 80, Rows: 24} },
	}
}

// watchSequence returns states in order, repeating the last one.
func watchSequence(states ...WatchState) func(string) WatchState {
	var mu sync.Mutex
	i := 0
	return func(string) WatchState {
		mu.Lock()
		defer mu.Unlock()
		s := states[min(i, len(states)-1)]
		i++
		return s
	}
}

type transition struct{ from, to State }

func recordTransitions(into *[]transition) Option {
	return WithTransitionHook(func(from, to State) {
		*into = append(*into, transition{from, to})
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "initial", Initial.String())
	assert.Equal(t, "rendering", Rendering.String())
	assert.Equal(t, "waiting", Waiting.String())
	assert.Equal(t, "terminated", Terminated.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestController_OneShot(t *testing.T) {
	src := sourcetest.NewFakeSource(sourcetest.Response{Lines: initialLines()})
	out := &fakeOutput{}
	initial := source.Query{Start: "10:00:00", End: "11:00:00"}
	var transitions []transition

	c := NewController(src, testPipeline(), out, Options{Initial: initial}, recordTransitions(&transitions))
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, Terminated, c.State())
	assert.Equal(t, 1, out.Frames())
	assert.Equal(t, []source.Query{initial}, src.Queries())
	assert.Equal(t, []transition{{Initial, Rendering}, {Rendering, Terminated}}, transitions)

	last := c.Last()
	assert.Len(t, last.Axis, 3)
	require.Len(t, last.Series, 2)
	assert.Equal(t, []float64{12.5, 13.0, 11.0}, last.Series[0].Values)
	assert.Contains(t, last.Frame.Chart, "(Time)")
}

func TestController_LiveSlidesUntilWatchChanges(t *testing.T) {
	src := sourcetest.NewFakeSource(
		sourcetest.Response{Lines: initialLines()},
		sourcetest.Response{Lines: liveSample("10:00:40")},
		sourcetest.Response{Lines: liveSample("10:00:50")},
	)
	out := &fakeOutput{}
	before := WatchState{Inode: 1, ModTime: time.Unix(100, 0), Exists: true}
	after := WatchState{Inode: 2, ModTime: time.Unix(100, 0), Exists: true}
	var transitions []transition

	c := NewController(src, testPipeline(), out,
		Options{Refresh: 5 * time.Second, WatchPath: "/run/session"},
		WithSnapshot(watchSequence(before, before, after)),
		WithoutFileEvents(),
		recordTransitions(&transitions))
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 3, out.Frames())
	queries := src.Queries()
	require.Len(t, queries, 3)
	assert.Equal(t, source.Live(5, 1), queries[1])
	assert.Equal(t, source.Live(5, 1), queries[2])

	axis := c.Last().Axis
	require.Len(t, axis, 3)
	assert.Equal(t, "10:00:30", axis[0].Format("15:04:05"))
	assert.Equal(t, "10:00:50", axis[2].Format("15:04:05"))
	assert.Equal(t, []float64{11.0, 20.0, 20.0}, c.Last().Series[0].Values)

	assert.Equal(t, []transition{
		{Initial, Rendering},
		{Rendering, Waiting},
		{Waiting, Rendering},
		{Rendering, Waiting},
		{Waiting, Rendering},
		{Rendering, Waiting},
		{Waiting, Terminated},
	}, transitions)
}

func TestController_MissingWatchFileStopsOnceCreated(t *testing.T) {
	src := sourcetest.NewFakeSource(
		sourcetest.Response{Lines: initialLines()},
		sourcetest.Response{Lines: liveSample("10:00:40")},
	)
	out := &fakeOutput{}

	c := NewController(src, testPipeline(), out,
		Options{Refresh: time.Second, WatchPath: "/run/missing"},
		WithSnapshot(watchSequence(WatchState{}, WatchState{Exists: true})),
		WithoutFileEvents())
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 2, out.Frames())
}

func TestController_RetriesTransientPaintFaults(t *testing.T) {
	src := sourcetest.NewFakeSource(sourcetest.Response{Lines: initialLines()})
	out := &fakeOutput{errs: []error{
		errors.New(errors.ErrRender, "Terminal resized during paint", ""),
	}}
	log := logger.NewBufferLogger()

	c := NewController(src, testPipeline(), out, Options{}, WithLogger(log))
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 2, out.Calls())
	assert.Equal(t, 1, out.Frames())
	assert.True(t, log.HasLevel("debug"))
}

func TestController_TransientFaultsExhausted(t *testing.T) {
	renderErr := errors.New(errors.ErrRender, "Screen init failed", "")

	t.Run("one-shot returns the fault", func(t *testing.T) {
		src := sourcetest.NewFakeSource(sourcetest.Response{Lines: initialLines()})
		out := &fakeOutput{errs: []error{renderErr, renderErr, renderErr}}

		err := NewController(src, testPipeline(), out, Options{}).Run(context.Background())

		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrRender))
		assert.Equal(t, MaxPaintAttempts, out.Calls())
	})

	t.Run("live skips the frame", func(t *testing.T) {
		src := sourcetest.NewFakeSource(
			sourcetest.Response{Lines: initialLines()},
			sourcetest.Response{Lines: liveSample("10:00:40")},
		)
		out := &fakeOutput{errs: []error{renderErr, renderErr, renderErr}}
		log := logger.NewBufferLogger()
		state := WatchState{Exists: true, Inode: 7}

		c := NewController(src, testPipeline(), out,
			Options{Refresh: time.Second, WatchPath: "/run/session"},
			WithSnapshot(watchSequence(state, WatchState{})),
			WithoutFileEvents(),
			WithLogger(log))
		require.NoError(t, c.Run(context.Background()))

		assert.Equal(t, 1, out.Frames())
		assert.True(t, log.HasLevel("warn"))
	})
}

func TestController_FatalErrors(t *testing.T) {
	tests := []struct {
		name      string
		responses []sourcetest.Response
		paintErrs []error
		refresh   time.Duration
		code      string
	}{
		{
			name:      "initial fetch fails",
			responses: []sourcetest.Response{{Err: errors.New(errors.ErrSourceFailed, "sar failed", "")}},
			code:      errors.ErrSourceFailed,
		},
		{
			name:      "no rows",
			responses: []sourcetest.Response{{Lines: sarOutput("10:00:00 CPU %user")}},
			code:      errors.ErrNoData,
		},
		{
			name: "no numeric columns",
			responses: []sourcetest.Response{{Lines: sarOutput(
				"10:00:00 IFACE state",
				"10:00:10 lo up",
			)}},
			code: errors.ErrNoNumeric,
		},
		{
			name: "refresh fetch fails",
			responses: []sourcetest.Response{
				{Lines: initialLines()},
				{Err: errors.New(errors.ErrSourceUnavailable, "lost host", "")},
			},
			refresh: time.Second,
			code:    errors.ErrSourceUnavailable,
		},
		{
			name:      "non-transient paint error",
			responses: []sourcetest.Response{{Lines: initialLines()}},
			paintErrs: []error{errors.New(errors.ErrConfig, "bad", "")},
			code:      errors.ErrConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sourcetest.NewFakeSource(tt.responses...)
			out := &fakeOutput{errs: tt.paintErrs}

			c := NewController(src, testPipeline(), out, Options{Refresh: tt.refresh}, WithoutFileEvents())
			err := c.Run(context.Background())

			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
			assert.Equal(t, Terminated, c.State())
		})
	}
}

func TestController_CancelStopsCleanly(t *testing.T) {
	src := sourcetest.NewFakeSource(
		sourcetest.Response{Lines: initialLines()},
		sourcetest.Response{Block: true},
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := &fakeOutput{hook: func(int) { cancel() }}

	c := NewController(src, testPipeline(), out, Options{Refresh: time.Second}, WithoutFileEvents())

	assert.NoError(t, c.Run(ctx))
	assert.Equal(t, Terminated, c.State())
	assert.Equal(t, 1, out.Frames())
}

func TestController_RefreshWithoutMatchingRows(t *testing.T) {
	src := sourcetest.NewFakeSource(
		sourcetest.Response{Lines: initialLines()},
		sourcetest.Response{Lines: sarOutput(
			"10:00:00        CPU     %user     %system",
			"10:00:40        0       20.0      5.0",
		)},
	)
	out := &fakeOutput{}
	state := WatchState{Exists: true}

	c := NewController(src, testPipeline(), out,
		Options{Refresh: time.Second, WatchPath: "/run/session"},
		WithSnapshot(watchSequence(state, WatchState{})),
		WithoutFileEvents())
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 2, out.Frames())
	assert.Len(t, c.Last().Axis, 2, "oldest bucket dropped, nothing appended")
}

func TestController_FileEventInterruptsRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, os.WriteFile(path, []byte("1"), 0644))

	src := sourcetest.NewFakeSource(
		sourcetest.Response{Lines: initialLines()},
		sourcetest.Response{Block: true},
	)
	out := &fakeOutput{}
	c := NewController(src, testPipeline(), out, Options{Refresh: time.Hour, WatchPath: path})

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	require.Eventually(t, func() bool { return len(src.Queries()) == 2 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, os.Remove(path))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("controller did not stop after the watched file changed")
	}
	assert.Equal(t, 1, out.Frames())
}

func ExampleState() {
	fmt.Println(Initial, Rendering, Waiting, Terminated)
	// Output: initial rendering waiting terminated
}

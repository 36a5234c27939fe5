// Package live drives the chart pipeline once or in a refresh loop.
package live

import (
	"context"
	"time"

	"github.com/sarchart/sarchart/internal/chart"
	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/logger"
	"github.com/sarchart/sarchart/internal/sar"
	"github.com/sarchart/sarchart/internal/source"
)

// State is a RefreshController state.
type State int

const (
	Initial State = iota
	Rendering
	Waiting
	Terminated
)

func (s State) String() string {
	switch s {
	case Initial:
		return "initial"
	case Rendering:
		return "rendering"
	case Waiting:
		return "waiting"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// MaxPaintAttempts bounds immediate repaints after a RENDER fault.
const MaxPaintAttempts = 3

// Output shows frames: the tcell painter or the print path.
type Output interface {
	Paint(frame chart.Frame) error
}

// Options control one controller run.
type Options struct {
	// Initial is the first, full-window query.
	Initial source.Query
	// Refresh is the live interval; zero renders a single frame.
	Refresh time.Duration
	// WatchPath stops a live run when the file changes.
	WatchPath string
}

// Controller runs the fetch, render and paint loop.
type Controller struct {
	src  source.DataSource
	pipe Pipeline
	out  Output
	opts Options
	log  logger.Logger

	state        State
	onTransition func(from, to State)
	snapshot     func(path string) WatchState
	watch        bool

	window *sar.Report
	last   Result
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithTransitionHook is called on every state change.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(c *Controller) { c.onTransition = fn }
}

// WithSnapshot replaces the watch-file stat function.
func WithSnapshot(fn func(path string) WatchState) Option {
	return func(c *Controller) { c.snapshot = fn }
}

// WithoutFileEvents disables fsnotify wake-ups; the watch file is then
// only checked once per refresh.
func WithoutFileEvents() Option {
	return func(c *Controller) { c.watch = false }
}

// NewController wires a source, a pipeline and an output.
func NewController(src source.DataSource, pipe Pipeline, out Output, opts Options, options ...Option) *Controller {
	c := &Controller{
		src:      src,
		pipe:     pipe,
		out:      out,
		opts:     opts,
		log:      logger.Noop(),
		snapshot: Snapshot,
		watch:    true,
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Last returns the most recently rendered window.
func (c *Controller) Last() Result {
	return c.last
}

// Run executes the state machine until Terminated. Cancelling ctx ends a
// run cleanly with a nil error; any fault other than RENDER is returned.
func (c *Controller) Run(ctx context.Context) error {
	c.state = Initial

	err := c.run(ctx)
	c.transition(Terminated)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (c *Controller) run(ctx context.Context) error {
	lines, err := c.src.Fetch(ctx, c.opts.Initial)
	if err != nil {
		return err
	}
	c.log.Debug("initial fetch returned %d lines", len(lines))

	report, err := c.pipe.Extract(lines)
	if err != nil {
		return err
	}
	c.pipe.WarnUnknownColumns(report, c.log)
	c.window = report

	var w *watcher
	if c.watch && c.opts.WatchPath != "" && c.opts.Refresh > 0 {
		w = newWatcher(c.opts.WatchPath, c.log)
		defer w.Close()
	}

	var initial WatchState
	captured := false
	for {
		c.transition(Rendering)
		if err := c.render(ctx); err != nil {
			return err
		}

		if c.opts.Refresh <= 0 {
			return nil
		}

		c.transition(Waiting)
		for slid := false; !slid; {
			if c.opts.WatchPath != "" {
				current := c.snapshot(c.opts.WatchPath)
				if !captured {
					initial, captured = current, true
				} else if !current.Equal(initial) {
					c.log.Info("%s changed, stopping", c.opts.WatchPath)
					return nil
				}
			}

			slid, err = c.refresh(ctx, w.Wake())
			if err != nil {
				return err
			}
		}
	}
}

// render builds a frame from the retained window and paints it. RENDER
// faults are retried a few times with a fresh geometry; a live run then
// carries on to the next tick.
func (c *Controller) render(ctx context.Context) error {
	var paintErr error
	for attempt := 1; attempt <= MaxPaintAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := c.pipe.Render(c.window)
		if err != nil {
			return err
		}
		c.last = result

		paintErr = c.out.Paint(result.Frame)
		if paintErr == nil {
			return nil
		}
		if !errors.IsTransient(paintErr) {
			return paintErr
		}
		c.log.Debug("paint attempt %d failed: %v", attempt, paintErr)
	}

	if c.opts.Refresh > 0 {
		c.log.Warn("skipping frame after %d failed paints", MaxPaintAttempts)
		return nil
	}
	return paintErr
}

// refresh fetches one live sample and slides the window. The fetch itself
// takes the refresh interval. A wake-up from the watched file cancels it
// so the watch check runs without waiting for the sample; slid is false
// in that case.
func (c *Controller) refresh(ctx context.Context, wake <-chan struct{}) (slid bool, err error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan struct{})
	defer close(stop)
	if wake != nil {
		go func() {
			select {
			case <-wake:
				cancel()
			case <-stop:
			}
		}()
	}

	seconds := max(int(c.opts.Refresh/time.Second), 1)
	lines, err := c.src.Fetch(fetchCtx, source.Live(seconds, 1))
	if err != nil {
		if ctx.Err() == nil && fetchCtx.Err() != nil {
			c.log.Debug("refresh interrupted by a change to %s", c.opts.WatchPath)
			return false, nil
		}
		return false, err
	}

	fresh, err := c.pipe.Extract(lines)
	if err != nil {
		if !errors.IsCode(err, errors.ErrNoData) {
			return false, err
		}
		c.log.Debug("refresh returned no matching rows")
		c.window = Slide(c.window, nil)
		return true, nil
	}
	c.window = Slide(c.window, fresh.Rows)
	return true, nil
}

func (c *Controller) transition(to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	c.log.Debug("state %s -> %s", from, to)
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}

package screen

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/sarchart/sarchart/internal/chart"
	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/logger"
)

// Legend block origin, relative to the chart's top-left corner.
const (
	LegendRow = 2
	LegendCol = 14
)

// Factory creates a fresh, uninitialized tcell screen.
type Factory func() (tcell.Screen, error)

// DefaultFactory opens the controlling terminal.
func DefaultFactory() (tcell.Screen, error) {
	return tcell.NewScreen()
}

// Painter paints frames into a persistent terminal screen.
// It is not safe for concurrent Paint calls.
type Painter struct {
	factory Factory
	onQuit  func()
	log     logger.Logger

	screen  tcell.Screen
	resized atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewPainter creates a painter. The screen is opened lazily on the first
// Paint. onQuit is called from the event goroutine on Ctrl+C, q or Esc.
func NewPainter(factory Factory, onQuit func(), log logger.Logger) *Painter {
	if factory == nil {
		factory = DefaultFactory
	}
	if onQuit == nil {
		onQuit = func() {}
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Painter{factory: factory, onQuit: onQuit, log: log}
}

// Paint draws the chart block at the origin and the legend block at
// (LegendRow, LegendCol), then flushes. Any failure tears the screen down
// and is reported as a RENDER error; the next Paint starts from scratch.
func (p *Painter) Paint(frame chart.Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrRender, "Screen paint failed", fmt.Sprint(r))
		}
		if err != nil {
			p.teardown()
		}
	}()

	if p.screen == nil {
		if err := p.init(); err != nil {
			return err
		}
	}

	if p.resized.Swap(false) {
		p.screen.Sync()
	}
	width, height := p.screen.Size()

	p.screen.Clear()
	p.draw(0, 0, frame.Chart)
	p.draw(LegendRow, LegendCol, frame.Legend)

	if w, h := p.screen.Size(); w != width || h != height {
		return errors.New(errors.ErrRender,
			fmt.Sprintf("Terminal resized during paint (%dx%d -> %dx%d)", width, height, w, h),
			"The frame is redrawn on the next tick.")
	}

	p.screen.Show()
	return nil
}

// Close releases the terminal.
func (p *Painter) Close() error {
	p.teardown()
	return nil
}

func (p *Painter) init() error {
	s, err := p.factory()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrRender, "Can't open terminal screen", "")
	}
	if err := s.Init(); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender, "Can't initialize terminal screen", "")
	}
	s.SetStyle(tcell.StyleDefault)
	s.HideCursor()

	p.screen = s
	p.done = make(chan struct{})
	p.wg.Add(1)
	go p.pollEvents(s, p.done)
	p.log.Debug("screen initialized")
	return nil
}

func (p *Painter) teardown() {
	if p.screen == nil {
		return
	}
	close(p.done)
	func() {
		defer func() { _ = recover() }()
		p.screen.Fini()
	}()
	p.wg.Wait()
	p.screen = nil
	p.resized.Store(false)
	p.log.Debug("screen torn down")
}

// pollEvents runs until the screen is finalized. It only records state;
// the screen is touched from Paint alone.
func (p *Painter) pollEvents(s tcell.Screen, done chan struct{}) {
	defer p.wg.Done()
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-done:
			return
		default:
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			p.resized.Store(true)
		case *tcell.EventKey:
			if isQuitKey(ev) {
				p.onQuit()
			}
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// draw writes a marked-up block starting at (row, col). Markers switch the
// foreground color and take no columns. Text past the screen edge is clipped.
func (p *Painter) draw(row, col int, block string) {
	if block == "" {
		return
	}
	width, height := p.screen.Size()
	for i, line := range strings.Split(block, "\n") {
		y := row + i
		if y >= height {
			return
		}
		x := col
		for _, run := range chart.Tokenize(line) {
			style := tcell.StyleDefault.Foreground(Color(run.Color))
			for _, ch := range run.Text {
				if x >= width {
					break
				}
				p.screen.SetContent(x, y, ch, nil, style)
				x++
			}
		}
	}
}

// Color resolves a color identity to a terminal palette color.
func Color(c chart.ColorIdentity) tcell.Color {
	if idx := c.Index(); idx >= 0 {
		return tcell.PaletteColor(idx)
	}
	return tcell.ColorDefault
}

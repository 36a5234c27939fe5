package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchart/sarchart/internal/chart"
	"github.com/sarchart/sarchart/internal/config"
	"github.com/sarchart/sarchart/internal/doctor"
	"github.com/sarchart/sarchart/internal/export"
	"github.com/sarchart/sarchart/internal/live"
	"github.com/sarchart/sarchart/internal/logger"
	"github.com/sarchart/sarchart/internal/screen"
	"github.com/sarchart/sarchart/internal/source"
	"github.com/sarchart/sarchart/internal/ui"
)

// chartDeps are the parts of a chart run that touch the outside world.
type chartDeps struct {
	now        func() time.Time
	termSize   func() chart.TermSize
	openSource func(ctx context.Context, cfg config.Configuration, log logger.Logger) (source.DataSource, error)
	screen     screen.Factory
	dial       doctor.Dialer
}

func defaultDeps() chartDeps {
	return chartDeps{
		now:        time.Now,
		termSize:   ui.TermSizeFunc(os.Stdout),
		openSource: openSource,
		screen:     screen.DefaultFactory,
		dial:       dialSSH,
	}
}

// openSource picks the data source: a saved report, an SSH host or the
// local sar binary.
func openSource(ctx context.Context, cfg config.Configuration, log logger.Logger) (source.DataSource, error) {
	switch {
	case cfg.Input != "":
		return source.NewFileSource(cfg.Input), nil
	case cfg.Host != "":
		return source.DialRemote(ctx, cfg.Host, source.DefaultBinary, cfg.SarArgs, log)
	default:
		return source.NewLocalSource(source.DefaultBinary, cfg.SarArgs, log), nil
	}
}

// printOutput is the plain-text output: every frame is printed in full.
type printOutput struct {
	printer *screen.Printer
	title   string
}

func (o printOutput) Paint(frame chart.Frame) error {
	return o.printer.Print(o.title, frame)
}

// runChart resolves the configuration and drives one controller run.
func runChart(ctx context.Context, flags *chartFlags, sarArgs []string, changed config.Changed, stdout, stderr io.Writer, deps chartDeps) error {
	raw, err := flags.configuration(sarArgs)
	if err != nil {
		return err
	}
	file, configPath, err := config.LoadOrDefault(flags.configPath)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(raw, changed, file)
	if err != nil {
		return err
	}

	logger.SetVerbose(cfg.Verbose)
	log := logger.Default()
	if configPath != "" {
		log.Debug("using config %s", configPath)
	}

	now := deps.now()
	query, err := initialQuery(cfg, now, deps.termSize())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// the panel owns the terminal, so nothing may log while it is up
	runLog := log
	if cfg.Panel {
		runLog = logger.Noop()
	}

	src, err := deps.openSource(ctx, cfg, runLog)
	if err != nil {
		return err
	}
	defer src.Close()

	pipe := live.Pipeline{
		Filters:  cfg.Filters,
		Include:  cfg.Include,
		Exclude:  cfg.Exclude,
		Derive:   cfg.Derive,
		Options:  cfg.ChartOptions(),
		Renderer: chart.NewRenderer(),
		TermSize: deps.termSize,
	}
	if cfg.Debug {
		pipe.Dump = stderr
	}

	var out live.Output
	var painter *screen.Painter
	if cfg.Panel {
		painter = screen.NewPainter(deps.screen, cancel, runLog)
		defer painter.Close()
		out = painter
	} else {
		printer, err := screen.NewPrinter(stdout, cfg.Color)
		if err != nil {
			return err
		}
		out = printOutput{printer: printer, title: cfg.Title}
	}

	ctrl := live.NewController(src, pipe, out, live.Options{
		Initial:   query,
		Refresh:   cfg.Refresh,
		WatchPath: cfg.WatchPath,
	}, live.WithLogger(runLog))

	if err := ctrl.Run(ctx); err != nil {
		return err
	}

	// a one-shot panel stays up until the user quits
	if painter != nil && !cfg.IsLive() && len(ctrl.Last().Series) > 0 {
		<-ctx.Done()
	}
	if painter != nil {
		painter.Close()
	}

	last := ctrl.Last()
	if cfg.Summary && len(last.Series) > 0 {
		fmt.Fprintln(stdout, chart.FormatSummary(chart.Summarize(last.Series)))
	}

	if cfg.Export != "" {
		if len(last.Series) == 0 {
			log.Warn("nothing was rendered, skipping export to %s", cfg.Export)
			return nil
		}
		path := config.ExpandExportPath(cfg.Export, cfg.Host, now)
		return export.Write(path, export.Snapshot{
			Title:  cfg.Title,
			Host:   cfg.Host,
			Taken:  deps.now(),
			Axis:   last.Axis,
			Series: last.Series,
		}, log)
	}
	return nil
}

// initialQuery sizes the first fetch: the time window, the day file and
// an interval hint matched to the chart width.
func initialQuery(cfg config.Configuration, now time.Time, term chart.TermSize) (source.Query, error) {
	window, err := cfg.Window(now)
	if err != nil {
		return source.Query{}, err
	}
	width := chart.ComputeGeometry(cfg.ChartOptions(), 0, 0, term).Width
	interval, err := window.IntervalHint(width)
	if err != nil {
		return source.Query{}, err
	}
	return source.Query{
		Start:    window.Start,
		End:      window.End,
		Interval: interval,
		DayFile:  window.DayFile,
	}, nil
}

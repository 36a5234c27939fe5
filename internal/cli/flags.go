package cli

import (
	"time"

	"github.com/sarchart/sarchart/internal/config"
	"github.com/sarchart/sarchart/internal/sar"
	"github.com/spf13/cobra"
)

// Flags that have no preset counterpart.
const (
	flagPreset  = "preset"
	flagAgo     = "ago"
	flagStart   = "start"
	flagEnd     = "end"
	flagWatch   = "watch"
	flagInput   = "input"
	flagExport  = "export"
	flagVerbose = "verbose"
	flagDebug   = "debug"
)

// chartFlags holds the raw command-line values of a chart run.
type chartFlags struct {
	configPath string

	title    string
	height   int
	width    int
	yLabel   string
	yMax     float64
	dev      string
	iface    string
	cpu      string
	include  []string
	exclude  []string
	derive   []string
	noLegend bool
	panel    bool

	ago     string
	start   string
	end     string
	refresh int
	watch   string

	host   string
	preset string
	input  string

	color   string
	summary bool
	export  string

	verbose bool
	debug   bool
}

func addChartFlags(cmd *cobra.Command, f *chartFlags) {
	flags := cmd.Flags()

	flags.StringVar(&f.title, config.FlagTitle, "", "chart title")
	flags.IntVar(&f.height, config.FlagHeight, 0, "chart height in rows (default: terminal height)")
	flags.IntVar(&f.width, config.FlagWidth, 0, "chart width in columns (default: terminal width)")
	flags.StringVar(&f.yLabel, config.FlagYLabel, "", "label above the y axis")
	flags.Float64Var(&f.yMax, config.FlagYMax, 0, "fixed top of the y axis (default: largest value)")
	flags.StringVar(&f.dev, config.FlagDev, "", "only rows for this DEV, e.g. sda")
	flags.StringVar(&f.iface, config.FlagIface, "", "only rows for this IFACE, e.g. eth0")
	flags.StringVar(&f.cpu, config.FlagCPU, "", "only rows for this CPU, e.g. all or 0")
	flags.StringSliceVar(&f.include, config.FlagInclude, nil, "columns to chart (default: all)")
	flags.StringSliceVar(&f.exclude, config.FlagExclude, nil, "columns to leave out; wins over --include")
	flags.StringArrayVar(&f.derive, config.FlagDerive, nil, "extra series as name=expression, e.g. total=[rxkB/s]+[txkB/s]")
	flags.BoolVar(&f.noLegend, config.FlagNoLegend, false, "never draw the legend")
	flags.BoolVar(&f.panel, config.FlagPanel, false, "draw in a full-screen panel")

	flags.StringVarP(&f.ago, flagAgo, "a", "", "read N days back, or the last N minutes with an m suffix (e.g. 1, 30m)")
	flags.StringVarP(&f.start, flagStart, "s", "", "window start, HH:MM[:SS] (default 00:00:00)")
	flags.StringVarP(&f.end, flagEnd, "e", "", "window end, HH:MM[:SS] (default 23:59:59)")
	flags.IntVar(&f.refresh, config.FlagRefresh, 0, "redraw every N seconds with a fresh sample")
	flags.StringVar(&f.watch, flagWatch, "", "stop refreshing when this file changes")

	flags.StringVar(&f.host, config.FlagHost, "", "run sar on this SSH host")
	flags.StringVarP(&f.preset, flagPreset, "p", "", "named preset from the config file")
	flags.StringVar(&f.input, flagInput, "", "chart a saved sar text report instead of running sar (- for stdin)")

	flags.StringVar(&f.color, config.FlagColor, "", "color output: auto, always or never")
	flags.BoolVar(&f.summary, config.FlagSummary, false, "print min/avg/max/last per series")
	flags.StringVar(&f.export, flagExport, "", "write the last window to a .json or .xlsx file (${HOST}, ${DATE}, ${TIME}, ${USER} expand)")

	flags.BoolVarP(&f.verbose, flagVerbose, "v", false, "log sar commands and state changes")
	flags.BoolVar(&f.debug, flagDebug, false, "print filtered rows and skip the panel")
}

// configuration converts the flags into an unresolved Configuration.
func (f *chartFlags) configuration(sarArgs []string) (config.Configuration, error) {
	derive, err := config.ParseDerivations(f.derive)
	if err != nil {
		return config.Configuration{}, err
	}

	return config.Configuration{
		Title:     f.title,
		Height:    f.height,
		Width:     f.width,
		YLabel:    f.yLabel,
		YMax:      f.yMax,
		Filters:   sar.Filters{Dev: f.dev, Iface: f.iface, CPU: f.cpu},
		Include:   f.include,
		Exclude:   f.exclude,
		Derive:    derive,
		NoLegend:  f.noLegend,
		Panel:     f.panel,
		Ago:       f.ago,
		Start:     f.start,
		End:       f.end,
		Refresh:   time.Duration(f.refresh) * time.Second,
		WatchPath: f.watch,
		Host:      f.host,
		Input:     f.input,
		Preset:    f.preset,
		SarArgs:   sarArgs,
		Color:     f.color,
		Summary:   f.summary,
		Export:    f.export,
		Verbose:   f.verbose,
		Debug:     f.debug,
	}, nil
}

package config

import (
	"time"

	"github.com/sarchart/sarchart/internal/chart"
	"github.com/sarchart/sarchart/internal/sar"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Color modes accepted by --color and defaults.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultSaDir is where sysstat keeps its daily saDD files.
const DefaultSaDir = "/var/log/sysstat"

// File represents the complete config file: defaults plus named presets.
type File struct {
	Version  int               `yaml:"version" mapstructure:"version"`
	Defaults Defaults          `yaml:"defaults" mapstructure:"defaults"`
	Presets  map[string]Preset `yaml:"presets" mapstructure:"presets"`
}

// Defaults apply to every invocation unless a flag or preset overrides them.
type Defaults struct {
	// SaDir holds the saDD day files read with --ago.
	SaDir string `yaml:"sa_dir" mapstructure:"sa_dir"`

	// Color mode for the print path: "auto", "always", or "never".
	Color string `yaml:"color" mapstructure:"color"`

	// Refresh interval in seconds; 0 means one-shot.
	Refresh int `yaml:"refresh,omitempty" mapstructure:"refresh"`

	// Host runs sar over SSH when set.
	Host string `yaml:"host,omitempty" mapstructure:"host"`
}

// Preset is a named chart: sar arguments plus any chart option.
// Values fill only options not given on the command line.
type Preset struct {
	Description string   `yaml:"description,omitempty" mapstructure:"description"`
	SarArgs     []string `yaml:"sar,omitempty" mapstructure:"sar"`

	Title    string   `yaml:"title,omitempty" mapstructure:"title"`
	YLabel   string   `yaml:"y_label,omitempty" mapstructure:"y_label"`
	YMax     float64  `yaml:"y_max,omitempty" mapstructure:"y_max"`
	Height   int      `yaml:"height,omitempty" mapstructure:"height"`
	Width    int      `yaml:"width,omitempty" mapstructure:"width"`
	Dev      string   `yaml:"dev,omitempty" mapstructure:"dev"`
	Iface    string   `yaml:"iface,omitempty" mapstructure:"iface"`
	CPU      string   `yaml:"cpu,omitempty" mapstructure:"cpu"`
	Include  []string `yaml:"include,omitempty" mapstructure:"include"`
	Exclude  []string `yaml:"exclude,omitempty" mapstructure:"exclude"`
	Derive   []string `yaml:"derive,omitempty" mapstructure:"derive"`
	Refresh  int      `yaml:"refresh,omitempty" mapstructure:"refresh"`
	NoLegend bool     `yaml:"no_legend,omitempty" mapstructure:"no_legend"`
	Panel    bool     `yaml:"panel,omitempty" mapstructure:"panel"`
	Summary  bool     `yaml:"summary,omitempty" mapstructure:"summary"`
}

// DefaultFile returns a File with sensible defaults and no presets.
func DefaultFile() *File {
	return &File{
		Version: CurrentConfigVersion,
		Defaults: Defaults{
			SaDir: DefaultSaDir,
			Color: ColorAuto,
		},
		Presets: make(map[string]Preset),
	}
}

// Configuration is the fully resolved set of options for one run.
// It is built once by Resolve and never mutated afterwards.
type Configuration struct {
	Title    string
	Height   int
	Width    int
	YLabel   string
	YMax     float64
	Filters  sar.Filters
	Include  []string
	Exclude  []string
	Derive   []sar.Derivation
	NoLegend bool
	Panel    bool

	// Time window. Ago is "N" days back or "Nm" minutes back.
	Ago   string
	Start string
	End   string

	Refresh   time.Duration
	WatchPath string

	Host    string
	Input   string
	Preset  string
	SarArgs []string
	SaDir   string

	Color   string
	Summary bool
	Export  string

	Verbose bool
	Debug   bool
}

// IsLive reports whether the chart refreshes until stopped.
func (c Configuration) IsLive() bool {
	return c.Refresh > 0
}

// ChartOptions returns the renderer options for this configuration.
func (c Configuration) ChartOptions() chart.Options {
	return chart.Options{
		Title:    c.Title,
		Width:    c.Width,
		Height:   c.Height,
		YLabel:   c.YLabel,
		YMax:     c.YMax,
		NoLegend: c.NoLegend,
		Panel:    c.Panel,
	}
}

package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/sar"
	"github.com/sarchart/sarchart/internal/util"
)

// Flag names that presets and file defaults may fill in.
const (
	FlagTitle    = "title"
	FlagHeight   = "height"
	FlagWidth    = "width"
	FlagYLabel   = "y-label"
	FlagYMax     = "y-max"
	FlagDev      = "dev"
	FlagIface    = "iface"
	FlagCPU      = "cpu"
	FlagInclude  = "include"
	FlagExclude  = "exclude"
	FlagDerive   = "derive"
	FlagRefresh  = "refresh"
	FlagNoLegend = "no-legend"
	FlagPanel    = "panel"
	FlagSummary  = "summary"
	FlagColor    = "color"
	FlagHost     = "host"
)

// Changed reports whether a flag was given on the command line.
type Changed func(flag string) bool

// Resolve layers command-line values over the selected preset over the
// file defaults, then validates the result. flags holds the parsed
// command line; changed tells explicit flags apart from zero values.
func Resolve(flags Configuration, changed Changed, f *File) (Configuration, error) {
	if f == nil {
		f = DefaultFile()
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}

	cfg := flags
	if cfg.Preset != "" {
		p, ok := f.Presets[PresetKey(cfg.Preset)]
		if !ok {
			return Configuration{}, unknownPresetError(cfg.Preset, f)
		}
		if err := applyPreset(&cfg, p, changed); err != nil {
			return Configuration{}, err
		}
	}

	if !changed(FlagColor) && cfg.Color == "" {
		cfg.Color = f.Defaults.Color
	}
	if cfg.Color == "" {
		cfg.Color = ColorAuto
	}
	if cfg.SaDir == "" {
		cfg.SaDir = f.Defaults.SaDir
	}
	if cfg.SaDir == "" {
		cfg.SaDir = DefaultSaDir
	}
	if cfg.Input == "" {
		if !changed(FlagRefresh) && cfg.Refresh == 0 && f.Defaults.Refresh > 0 {
			cfg.Refresh = seconds(f.Defaults.Refresh)
		}
		if !changed(FlagHost) && cfg.Host == "" {
			cfg.Host = f.Defaults.Host
		}
	}

	// debug output goes to the terminal, which the panel would own
	if cfg.Debug {
		cfg.Panel = false
	}

	cfg.SaDir = ExpandRemote(cfg.SaDir, cfg.Host != "")
	cfg.WatchPath = ExpandTilde(cfg.WatchPath)
	if cfg.Input != "-" {
		cfg.Input = ExpandTilde(cfg.Input)
	}

	if err := Validate(cfg); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// applyPreset fills options the command line left alone. Preset sar
// arguments come before the ones given after --.
func applyPreset(cfg *Configuration, p Preset, changed Changed) error {
	fillString := func(flag string, dst *string, v string) {
		if !changed(flag) && v != "" {
			*dst = v
		}
	}
	fillInt := func(flag string, dst *int, v int) {
		if !changed(flag) && v != 0 {
			*dst = v
		}
	}
	fillList := func(flag string, dst *[]string, v []string) {
		if !changed(flag) && len(v) > 0 {
			*dst = append([]string(nil), v...)
		}
	}
	fillBool := func(flag string, dst *bool, v bool) {
		if !changed(flag) && v {
			*dst = true
		}
	}

	fillString(FlagTitle, &cfg.Title, p.Title)
	fillString(FlagYLabel, &cfg.YLabel, p.YLabel)
	fillString(FlagDev, &cfg.Filters.Dev, p.Dev)
	fillString(FlagIface, &cfg.Filters.Iface, p.Iface)
	fillString(FlagCPU, &cfg.Filters.CPU, p.CPU)
	fillInt(FlagHeight, &cfg.Height, p.Height)
	fillInt(FlagWidth, &cfg.Width, p.Width)
	fillList(FlagInclude, &cfg.Include, p.Include)
	fillList(FlagExclude, &cfg.Exclude, p.Exclude)
	fillBool(FlagNoLegend, &cfg.NoLegend, p.NoLegend)
	fillBool(FlagPanel, &cfg.Panel, p.Panel)
	fillBool(FlagSummary, &cfg.Summary, p.Summary)

	if !changed(FlagYMax) && p.YMax > 0 {
		cfg.YMax = p.YMax
	}
	if !changed(FlagRefresh) && p.Refresh > 0 && cfg.Input == "" {
		cfg.Refresh = seconds(p.Refresh)
	}
	if !changed(FlagDerive) && len(p.Derive) > 0 {
		derivations, err := ParseDerivations(p.Derive)
		if err != nil {
			return err
		}
		cfg.Derive = derivations
	}

	if len(p.SarArgs) > 0 {
		cfg.SarArgs = append(append([]string(nil), p.SarArgs...), cfg.SarArgs...)
	}
	return nil
}

// ParseDerivations parses repeated "name=expr" values.
func ParseDerivations(values []string) ([]sar.Derivation, error) {
	var out []sar.Derivation
	for _, v := range values {
		d, err := sar.ParseDerivation(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// PresetNames returns the preset names in sorted order.
func (f *File) PresetNames() []string {
	names := make([]string, 0, len(f.Presets))
	for name := range f.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unknownPresetError(name string, f *File) error {
	names := f.PresetNames()
	suggestion := "Run 'sarchart presets list' to see what's available."
	if len(names) == 0 {
		suggestion = "No presets are defined. Add one with 'sarchart presets add'."
	} else if similar := util.SuggestSimilar(name, names, 1); len(similar) > 0 {
		suggestion = fmt.Sprintf("Did you mean '%s'? %s", similar[0], suggestion)
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Preset '%s' does not exist", name),
		suggestion)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

package config

import (
	"fmt"
	"strings"

	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/export"
	"github.com/sarchart/sarchart/internal/sar"
)

// ValidColorModes lists the accepted --color values.
var ValidColorModes = []string{ColorAuto, ColorAlways, ColorNever}

// ValidateFile checks the config file for errors and returns structured error messages.
func ValidateFile(f *File) error {
	if f.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sarchart only knows up to %d)", f.Version, CurrentConfigVersion),
			"Upgrade sarchart, or lower the version field if you wrote it by hand.")
	}

	if f.Defaults.Color != "" && !isColorMode(f.Defaults.Color) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("defaults.color is '%s'", f.Defaults.Color),
			"Use one of: "+strings.Join(ValidColorModes, ", "))
	}
	if f.Defaults.Refresh < 0 {
		return errors.New(errors.ErrConfig,
			"defaults.refresh can't be negative",
			"Use the refresh interval in seconds, or 0 for a one-shot chart.")
	}

	for _, name := range f.PresetNames() {
		if err := ValidatePreset(name, f.Presets[name]); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'presets' section of your config file.")
		}
	}

	return nil
}

// ValidatePreset checks a single preset.
func ValidatePreset(name string, p Preset) error {
	if err := ValidatePresetName(name); err != nil {
		return err
	}
	if p.Height < 0 || p.Width < 0 {
		return fmt.Errorf("preset '%s' has a negative height or width", name)
	}
	if p.YMax < 0 {
		return fmt.Errorf("preset '%s' has a negative y_max", name)
	}
	if p.Refresh < 0 {
		return fmt.Errorf("preset '%s' has a negative refresh", name)
	}
	for _, arg := range p.SarArgs {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("preset '%s' has an empty sar argument", name)
		}
	}
	for _, d := range p.Derive {
		if _, err := sar.ParseDerivation(d); err != nil {
			return fmt.Errorf("preset '%s' has an invalid derive entry %q", name, d)
		}
	}
	return nil
}

// ValidatePresetName checks that name can be used with --preset.
func ValidatePresetName(name string) error {
	if name == "" {
		return fmt.Errorf("preset name can't be empty")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("preset name '%s' can't start with '-'", name)
	}
	if strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("preset name '%s' can't contain whitespace", name)
	}
	return nil
}

// Validate checks a resolved configuration for conflicting or malformed options.
func Validate(cfg Configuration) error {
	if cfg.Height < 0 || cfg.Width < 0 {
		return errors.New(errors.ErrConfig,
			"--height and --width can't be negative",
			"Leave them unset to size the chart from the terminal.")
	}
	if cfg.YMax < 0 {
		return errors.New(errors.ErrConfig,
			"--y-max can't be negative",
			"The y-axis always starts at 0. Leave --y-max unset to use the observed maximum.")
	}
	if !isColorMode(cfg.Color) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid --color value '%s'", cfg.Color),
			"Use one of: "+strings.Join(ValidColorModes, ", "))
	}

	if cfg.Ago != "" {
		if _, err := ParseAgo(cfg.Ago); err != nil {
			return err
		}
	}
	if err := validateTime("--start", cfg.Start); err != nil {
		return err
	}
	if err := validateTime("--end", cfg.End); err != nil {
		return err
	}

	if cfg.Refresh < 0 {
		return errors.New(errors.ErrConfig,
			"--refresh can't be negative",
			"Use the refresh interval in seconds.")
	}
	if cfg.WatchPath != "" && !cfg.IsLive() {
		return errors.New(errors.ErrConfig,
			"--watch only applies to refreshing charts",
			"Add --refresh N to keep the chart live until the watched file changes.")
	}

	if cfg.Input != "" {
		if cfg.IsLive() {
			return errors.New(errors.ErrConfig,
				"A saved report can't be refreshed",
				"Drop --refresh when using --input.")
		}
		if cfg.Host != "" {
			return errors.New(errors.ErrConfig,
				"--input and --host can't be combined",
				"Pick one data source: a saved report or a remote host.")
		}
		if cfg.Ago != "" {
			return errors.New(errors.ErrConfig,
				"--ago selects a day file, which a saved report doesn't have",
				"Drop --ago when using --input.")
		}
	}

	if cfg.Host != "" {
		if err := validateHostReference(cfg.Host); err != nil {
			return err
		}
	}

	if cfg.Export != "" {
		if _, err := export.FormatFor(cfg.Export); err != nil {
			return err
		}
	}

	return nil
}

// validateHostReference checks that a host is an SSH alias or [user@]hostname.
func validateHostReference(host string) error {
	if strings.HasPrefix(host, "-") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Host '%s' looks like a flag", host),
			"Use an SSH config alias or user@hostname.")
	}
	if strings.ContainsAny(host, " \t/") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Host '%s' contains whitespace or a path separator", host),
			"Use an SSH config alias or user@hostname.")
	}
	return nil
}

func validateTime(flag, value string) error {
	if value == "" {
		return nil
	}
	if _, err := sar.ParseTime(value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid %s value '%s'", flag, value),
			"Use HH:MM:SS or HH:MM, for example 08:30.")
	}
	return nil
}

func isColorMode(mode string) bool {
	for _, m := range ValidColorModes {
		if m == mode {
			return true
		}
	}
	return false
}

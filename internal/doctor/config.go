package doctor

import (
	"context"

	"github.com/sarchart/sarchart/internal/config"
	"github.com/sarchart/sarchart/internal/util"
)

// ConfigCheck loads and validates the config file, if there is one.
type ConfigCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigCheck) Name() string     { return "config_file" }
func (c *ConfigCheck) Category() string { return CategoryConfig }

func (c *ConfigCheck) Run(ctx context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return fail("Check the --config path.", "Config file not found: %v", err)
	}
	if path == "" {
		return pass("No config file, using defaults (presets can be added with 'sarchart presets add')")
	}

	f, err := config.Load(path)
	if err != nil {
		return fail("Fix the YAML in "+path+".", "Config file %s is invalid", path)
	}

	n := len(f.Presets)
	return pass("Config file %s: %d %s", path, n, util.Pluralize(n, "preset", "presets"))
}

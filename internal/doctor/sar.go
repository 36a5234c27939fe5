package doctor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sarchart/sarchart/internal/source"
	"github.com/sarchart/sarchart/internal/util"
)

const installHint = "Install the sysstat package, e.g. 'apt install sysstat' or 'dnf install sysstat'."

const collectHint = "Enable sysstat data collection so --ago can read past days, e.g. 'systemctl enable --now sysstat'."

// dayFilePattern matches the daily binary files sadc writes.
const dayFilePattern = "sa[0-9][0-9]"

// LocalSarCheck verifies that sar is on PATH.
type LocalSarCheck struct {
	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

func (c *LocalSarCheck) Name() string     { return "sar_binary" }
func (c *LocalSarCheck) Category() string { return CategorySar }

func (c *LocalSarCheck) Run(ctx context.Context) CheckResult {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(source.DefaultBinary)
	if err != nil {
		return fail(installHint, "sar is not installed")
	}
	return pass("sar found at %s", path)
}

// SaDirCheck verifies that the sysstat directory holds day files.
type SaDirCheck struct {
	Dir string
}

func (c *SaDirCheck) Name() string     { return "sa_dir" }
func (c *SaDirCheck) Category() string { return CategorySar }

func (c *SaDirCheck) Run(ctx context.Context) CheckResult {
	info, err := os.Stat(c.Dir)
	if err != nil || !info.IsDir() {
		return warn(collectHint+" Or set defaults.sa_dir in the config file.", "%s does not exist", c.Dir)
	}

	files, _ := filepath.Glob(filepath.Join(c.Dir, dayFilePattern))
	if len(files) == 0 {
		return warn(collectHint, "%s has no day files", c.Dir)
	}
	return pass("%s has %d day %s", c.Dir, len(files), util.Pluralize(len(files), "file", "files"))
}

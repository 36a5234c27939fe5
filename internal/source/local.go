package source

import (
	"context"
	"strings"

	"github.com/sarchart/sarchart/internal/exec"
	"github.com/sarchart/sarchart/internal/logger"
)

// LocalSource runs sar on this machine.
type LocalSource struct {
	binary string
	base   []string
	log    logger.Logger
}

// NewLocalSource creates a source running binary (DefaultBinary when
// empty) with the base sar arguments, e.g. ["-n", "DEV"].
func NewLocalSource(binary string, base []string, log logger.Logger) *LocalSource {
	if binary == "" {
		binary = DefaultBinary
	}
	if log == nil {
		log = logger.Noop()
	}
	return &LocalSource{binary: binary, base: base, log: log}
}

// Fetch implements DataSource.
func (s *LocalSource) Fetch(ctx context.Context, q Query) ([]string, error) {
	argv := commandLine(s.binary, s.base, q)
	s.log.Debug("running %s", strings.Join(argv, " "))

	stdout, stderr, exitCode, err := exec.Capture(ctx, argv[0], argv[1:], sarEnv)
	if err != nil {
		return nil, err
	}
	if err := exec.HandleExitStatus(argv, "", string(stderr), exitCode); err != nil {
		return nil, err
	}
	return splitLines(stdout), nil
}

// Close implements DataSource.
func (s *LocalSource) Close() error {
	return nil
}

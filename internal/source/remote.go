package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/exec"
	"github.com/sarchart/sarchart/internal/logger"
	"github.com/sarchart/sarchart/internal/util"
	"github.com/sarchart/sarchart/pkg/sshutil"
)

// DialTimeout bounds the SSH connection attempt.
const DialTimeout = 10 * time.Second

// RemoteSource runs sar on another host over one SSH connection,
// reused across fetches.
type RemoteSource struct {
	client sshutil.SSHClient
	binary string
	base   []string
	log    logger.Logger
}

// DialRemote connects to host and returns a source for it. A host that
// cannot be reached is SOURCE_UNAVAILABLE.
func DialRemote(ctx context.Context, host, binary string, base []string, log logger.Logger) (*RemoteSource, error) {
	client, err := sshutil.Dial(ctx, host, DialTimeout)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSourceUnavailable,
			fmt.Sprintf("Can't reach sar on %s", host),
			"Check that `ssh "+host+"` works without a password prompt.")
	}
	return NewRemoteSource(client, binary, base, log), nil
}

// NewRemoteSource wraps an existing SSH client.
func NewRemoteSource(client sshutil.SSHClient, binary string, base []string, log logger.Logger) *RemoteSource {
	if binary == "" {
		binary = DefaultBinary
	}
	if log == nil {
		log = logger.Noop()
	}
	return &RemoteSource{client: client, binary: binary, base: base, log: log}
}

// Fetch implements DataSource.
func (s *RemoteSource) Fetch(ctx context.Context, q Query) ([]string, error) {
	argv := commandLine(s.binary, s.base, q)
	cmd := strings.Join(sarEnv, " ") + " " + util.ShellJoin(argv)
	s.log.Debug("running on %s: %s", s.client.GetHost(), cmd)

	stdout, stderr, exitCode, err := s.client.ExecContext(ctx, cmd)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.WrapWithCode(err, errors.ErrSourceUnavailable,
			fmt.Sprintf("Lost connection to %s", s.client.GetHost()), "")
	}
	if err := exec.HandleExitStatus(argv, s.client.GetHost(), string(stderr), exitCode); err != nil {
		return nil, err
	}
	return splitLines(stdout), nil
}

// Close implements DataSource.
func (s *RemoteSource) Close() error {
	return s.client.Close()
}

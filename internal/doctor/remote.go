package doctor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sarchart/sarchart/internal/util"
	"github.com/sarchart/sarchart/pkg/sshutil"
)

// Dialer opens an SSH connection to a host.
type Dialer func(ctx context.Context, host string) (sshutil.SSHClient, error)

// Connection dials a host once and shares the client between checks.
type Connection struct {
	Host string
	Dial Dialer

	once   sync.Once
	client sshutil.SSHClient
	err    error
}

// Client returns the shared client, dialing on first use.
func (c *Connection) Client(ctx context.Context) (sshutil.SSHClient, error) {
	c.once.Do(func() {
		c.client, c.err = c.Dial(ctx, c.Host)
	})
	return c.client, c.err
}

// Close closes the client if one was opened.
func (c *Connection) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// SSHCheck verifies that the host accepts an SSH connection.
type SSHCheck struct {
	Conn *Connection
}

func (c *SSHCheck) Name() string     { return "ssh_" + c.Conn.Host }
func (c *SSHCheck) Category() string { return CategorySSH }

func (c *SSHCheck) Run(ctx context.Context) CheckResult {
	if _, err := c.Conn.Client(ctx); err != nil {
		return fail("Check that 'ssh "+c.Conn.Host+"' works without a password prompt.",
			"Can't connect to %s", c.Conn.Host)
	}
	return pass("Connected to %s", c.Conn.Host)
}

// RemoteSarCheck verifies that sar is installed on the host.
type RemoteSarCheck struct {
	Conn *Connection
}

func (c *RemoteSarCheck) Name() string     { return "sar_binary_" + c.Conn.Host }
func (c *RemoteSarCheck) Category() string { return CategorySar }

func (c *RemoteSarCheck) Run(ctx context.Context) CheckResult {
	client, err := c.Conn.Client(ctx)
	if err != nil {
		return fail("", "sar on %s: no connection", c.Conn.Host)
	}

	stdout, _, exitCode, err := client.ExecContext(ctx, "command -v sar")
	if err != nil {
		return fail("Check the SSH connection.", "Can't run commands on %s: %v", c.Conn.Host, err)
	}
	if exitCode != 0 {
		return fail(installHint, "sar is not installed on %s", c.Conn.Host)
	}
	return pass("sar found on %s at %s", c.Conn.Host, strings.TrimRight(string(stdout), "\r\n"))
}

// RemoteSaDirCheck verifies that the sysstat directory exists on the host.
type RemoteSaDirCheck struct {
	Conn *Connection
	Dir  string
}

func (c *RemoteSaDirCheck) Name() string     { return "sa_dir_" + c.Conn.Host }
func (c *RemoteSaDirCheck) Category() string { return CategorySar }

func (c *RemoteSaDirCheck) Run(ctx context.Context) CheckResult {
	client, err := c.Conn.Client(ctx)
	if err != nil {
		return fail("", "%s on %s: no connection", c.Dir, c.Conn.Host)
	}

	cmd := fmt.Sprintf("test -d %s", util.ShellQuotePreserveTilde(c.Dir))
	_, _, exitCode, err := client.ExecContext(ctx, cmd)
	if err != nil {
		return fail("Check the SSH connection.", "Can't check %s on %s: %v", c.Dir, c.Conn.Host, err)
	}
	if exitCode != 0 {
		return warn(collectHint, "%s does not exist on %s", c.Dir, c.Conn.Host)
	}
	return pass("%s exists on %s", c.Dir, c.Conn.Host)
}

package exec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sarchart/sarchart/internal/errors"
)

// commandNotFoundPatterns are regex patterns to detect "command not found" errors
// from various shells. These require exit code 127.
var commandNotFoundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bash: (\S+): command not found`),
	regexp.MustCompile(`(?i)zsh: command not found: (\S+)`),
	regexp.MustCompile(`(?i)sh: \d+: (\S+): not found`),
	regexp.MustCompile(`(?i)-bash: (\S+): No such file or directory`),
	regexp.MustCompile(`(?i)(\S+): not found`),
	regexp.MustCompile(`(?i)(\S+): command not found`),
}

// IsCommandNotFound checks if the error output indicates a missing command.
// Returns the command name (if extractable) and whether it's a command-not-found error.
func IsCommandNotFound(stderr string, exitCode int) (string, bool) {
	// Exit code 127 is the standard for command not found
	if exitCode != 127 {
		return "", false
	}

	for _, pattern := range commandNotFoundPatterns {
		if matches := pattern.FindStringSubmatch(stderr); len(matches) > 1 {
			return matches[1], true
		}
	}

	return "", true
}

// NotFoundError builds the SOURCE_UNAVAILABLE error for a missing
// executable. host is empty for the local machine.
func NotFoundError(cmd, host string) error {
	where := "on this machine"
	check := "which " + cmd
	if host != "" {
		where = "on " + host
		check = fmt.Sprintf("ssh %s which %s", host, cmd)
	}

	suggestion := fmt.Sprintf(`'%s' is part of the sysstat package.

Fixes:

1. Install sysstat %s:
   apt install sysstat   # Debian/Ubuntu
   dnf install sysstat   # Fedora/RHEL

2. If installed, verify it's in your PATH:
   %s`, cmd, where, check)

	return errors.New(errors.ErrSourceUnavailable,
		fmt.Sprintf("'%s' not found %s", cmd, where),
		suggestion)
}

// HandleExitStatus turns a finished command's status into an error.
// Exit 0 is nil; exit 127 means the command is missing; any other status
// is SOURCE_FAILED carrying stderr verbatim.
func HandleExitStatus(cmd []string, host, stderr string, exitCode int) error {
	if exitCode == 0 {
		return nil
	}

	if name, notFound := IsCommandNotFound(stderr, exitCode); notFound {
		if name == "" && len(cmd) > 0 {
			name = cmd[0]
		}
		return NotFoundError(name, host)
	}

	return errors.WrapWithCode(fmt.Errorf("%s", strings.TrimRight(stderr, "\n")), errors.ErrSourceFailed,
		fmt.Sprintf("'%s' failed with exit code %d", strings.Join(cmd, " "), exitCode),
		"Check the sar arguments after --, and that the requested day file exists.")
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax - just ~ for the current user.
// Use this for LOCAL paths only. Remote paths should keep ~ for the remote shell.
func ExpandTilde(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unchanged if we can't get home
		}
		return filepath.Join(home, path[2:])
	}

	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	return path
}

// ExpandExportPath replaces variables in an --export path and expands ~.
// Supported variables:
//   - ${HOST} - the --host value, or "local"
//   - ${DATE} - the run date as YYYY-MM-DD
//   - ${TIME} - the run time as HHMMSS
//   - ${USER} - current username
func ExpandExportPath(s, host string, now time.Time) string {
	if s == "" {
		return s
	}

	if host == "" {
		host = "local"
	}
	replacer := strings.NewReplacer(
		"${HOST}", sanitizePathSegment(host),
		"${DATE}", now.Format("2006-01-02"),
		"${TIME}", now.Format("150405"),
		"${USER}", getUser(),
	)
	return ExpandTilde(replacer.Replace(s))
}

// ExpandRemote keeps ~ for paths read on a remote host, so the remote
// shell expands it; local paths get ExpandTilde.
func ExpandRemote(path string, remote bool) string {
	if remote {
		return path
	}
	return ExpandTilde(path)
}

// getUser returns the current username for ${USER} expansion.
func getUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}

	// Try LOGNAME (POSIX standard)
	if user := os.Getenv("LOGNAME"); user != "" {
		return user
	}

	// Try USERNAME (Windows)
	if user := os.Getenv("USERNAME"); user != "" {
		return user
	}

	return "user"
}

// sanitizePathSegment replaces characters unsafe for filesystems with hyphens.
func sanitizePathSegment(s string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
		"@", "-",
	)
	return replacer.Replace(s)
}

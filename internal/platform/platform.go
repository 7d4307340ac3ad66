// SPDX-License-Identifier: MPL-2.0

// Package platform wraps host-level lookups used across the CLI:
// executable resolution, host identity, and process identity.
package platform

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
)

// AppPath resolves an application name through PATH and returns its
// absolute path. A name containing a separator is returned as-is after
// an existence check.
func AppPath(app string) (string, error) {
	path, err := exec.LookPath(app)
	if err != nil {
		return "", fmt.Errorf("application %q not found in PATH: %w", app, err)
	}
	return path, nil
}

// Hostname returns the host name, or "localhost" when it cannot be
// determined.
func Hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return name
}

// PID returns the current process ID.
func PID() int {
	return os.Getpid()
}

// Username returns the current user's login name, or "" when it cannot
// be determined.
func Username() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}

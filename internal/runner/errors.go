// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the sentinel error wrapped by ConfigurationError.
	ErrConfiguration = errors.New("invalid run configuration")
	// ErrLaunch is the sentinel error wrapped by LaunchError.
	ErrLaunch = errors.New("executable could not be launched")
	// ErrExecution is the sentinel error wrapped by ExecutionError.
	ErrExecution = errors.New("executable exited with a non-zero status")
)

type (
	// ConfigurationError reports an unusable run specification or global
	// configuration: missing required paths, invalid enum values, or an
	// unresolvable launcher setup.
	ConfigurationError struct {
		Cause error
	}

	// LaunchError reports a process that could not be started: a missing
	// or non-executable binary, or a spawn failure.
	LaunchError struct {
		ExecPath string
		Cause    error
	}

	// ExecutionError reports a process that started but exited non-zero.
	// It is non-fatal to the runner: the Result is returned alongside it
	// so callers can inspect the exit code and the captured logs.
	ExecutionError struct {
		ExecPath   string
		ExitCode   int
		StderrPath string
		Cause      error
	}
)

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfiguration, e.Cause)
}

// Unwrap exposes both the sentinel and the cause for errors.Is/As.
func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Cause}
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrLaunch, e.ExecPath, e.Cause)
}

// Unwrap exposes both the sentinel and the cause for errors.Is/As.
func (e *LaunchError) Unwrap() []error {
	return []error{ErrLaunch, e.Cause}
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("%s: %s exited with code %d", ErrExecution, e.ExecPath, e.ExitCode)
	if e.StderrPath != "" {
		msg += fmt.Sprintf(" (error log: %s)", e.StderrPath)
	}
	return msg
}

// Unwrap exposes the sentinel, and the cause when one exists, for
// errors.Is/As.
func (e *ExecutionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrExecution}
	}
	return []error{ErrExecution, e.Cause}
}

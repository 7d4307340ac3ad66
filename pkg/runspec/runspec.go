// SPDX-License-Identifier: MPL-2.0

package runspec

import (
	"errors"
	"fmt"
	"time"
)

// Default log file names, relative to the run path, used when stdout or
// stderr destinations are not set.
const (
	DefaultStdoutName = "stdout.log"
	DefaultStderrName = "stderr.log"
)

// ErrModeConflict is returned when the mode field is combined with the
// legacy multi/serial booleans in the same document.
var ErrModeConflict = errors.New("mode conflicts with legacy multi/serial fields")

type (
	// RunSpec describes a single executable invocation. It is constructed
	// by a caller (usually by parsing a YAML document), validated at run
	// time, consumed once, and discarded; it owns no long-lived resources.
	RunSpec struct {
		// ExecPath is the path to the executable to launch (required).
		// Bare names are resolved through PATH at run time.
		ExecPath FilesystemPath `json:"exec_path" yaml:"exec_path"`
		// RunPath is the working directory for the run (required).
		// It is created when absent.
		RunPath FilesystemPath `json:"run_path" yaml:"run_path"`
		// Mode selects serial or multi-task launching. When empty, the
		// legacy Multi/Serial booleans are consulted; when those are also
		// unset the run defaults to serial.
		Mode ExecutionMode `json:"mode,omitempty" yaml:"mode,omitempty"`
		// Multi is the legacy boolean form of ModeMulti. When true, the
		// run is multi-task regardless of Serial's value.
		Multi *bool `json:"multi,omitempty" yaml:"multi,omitempty"`
		// Serial is the legacy boolean form of ModeSerial. It carries no
		// independent meaning: Multi wins whenever both are set.
		Serial *bool `json:"serial,omitempty" yaml:"serial,omitempty"`
		// Stdin holds ordered lines written to the child process's
		// standard input, after which the stream is closed.
		Stdin []string `json:"stdin,omitempty" yaml:"stdin,omitempty"`
		// Stdout is the standard output destination. Relative paths are
		// resolved against RunPath; empty defaults to <run_path>/stdout.log.
		Stdout FilesystemPath `json:"stdout,omitempty" yaml:"stdout,omitempty"`
		// Stderr is the standard error destination. Relative paths are
		// resolved against RunPath; empty defaults to <run_path>/stderr.log.
		Stderr FilesystemPath `json:"stderr,omitempty" yaml:"stderr,omitempty"`
		// Scheduler picks the launcher family for multi-task runs.
		Scheduler Scheduler `json:"scheduler,omitempty" yaml:"scheduler,omitempty"`
		// Launcher overrides the scheduler-derived launcher command. The
		// string is split with shell word rules, so quoted arguments are
		// preserved (e.g. `mpirun --bind-to core`).
		Launcher string `json:"launcher,omitempty" yaml:"launcher,omitempty"`
		// NTasks fixes the task count for multi-task runs. When zero the
		// count is resolved from the configured task environment keys.
		NTasks int `json:"ntasks,omitempty" yaml:"ntasks,omitempty"`
		// Env holds extra environment variables for the child process.
		Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
		// Timeout bounds the run's wall time (Go duration string).
		// Empty means no timeout.
		Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`

		// FilePath is the path this spec was parsed from, when any.
		FilePath FilesystemPath `json:"-" yaml:"-"`
	}

	// ValidationErrors collects all semantic validation failures for a
	// RunSpec so callers can report every problem at once.
	ValidationErrors []error
)

// Error implements the error interface by joining all collected messages.
func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("run spec validation failed: %s", joinMessages(msgs))
}

// Unwrap exposes the individual errors for errors.Is/As.
func (v ValidationErrors) Unwrap() []error { return v }

func joinMessages(msgs []string) string {
	out := ""
	for i, m := range msgs {
		if i > 0 {
			out += "; "
		}
		out += m
	}
	return out
}

// ResolvedMode returns the effective execution mode. The explicit Mode
// field wins; otherwise Multi=true selects ModeMulti and anything else,
// including both booleans unset, falls back to ModeSerial.
func (s *RunSpec) ResolvedMode() ExecutionMode {
	if s.Mode != "" {
		return s.Mode
	}
	if s.Multi != nil && *s.Multi {
		return ModeMulti
	}
	return ModeSerial
}

// ResolvedTimeout parses the Timeout field. A zero duration means the run
// is unbounded.
func (s *RunSpec) ResolvedTimeout() (time.Duration, error) {
	return parseDuration("timeout", s.Timeout)
}

// Validate performs semantic validation beyond what the CUE schema can
// express and returns all failures.
func (s *RunSpec) Validate() ValidationErrors {
	var errs ValidationErrors

	if ok, pathErrs := s.ExecPath.IsValid(); !ok {
		errs = append(errs, fieldErrors("exec_path", pathErrs)...)
	}
	if ok, pathErrs := s.RunPath.IsValid(); !ok {
		errs = append(errs, fieldErrors("run_path", pathErrs)...)
	}
	if s.Mode != "" {
		if ok, modeErrs := s.Mode.IsValid(); !ok {
			errs = append(errs, modeErrs...)
		}
		if s.Multi != nil || s.Serial != nil {
			errs = append(errs, ErrModeConflict)
		}
	}
	if ok, schedErrs := s.Scheduler.IsValid(); !ok {
		errs = append(errs, schedErrs...)
	}
	if s.NTasks < 0 {
		errs = append(errs, fmt.Errorf("invalid ntasks %d: must not be negative", s.NTasks))
	}
	if _, err := s.ResolvedTimeout(); err != nil {
		errs = append(errs, err)
	}

	return errs
}

func fieldErrors(field string, in []error) []error {
	out := make([]error, 0, len(in))
	for _, err := range in {
		var pathErr *InvalidFilesystemPathError
		if errors.As(err, &pathErr) {
			out = append(out, &InvalidFilesystemPathError{Field: field, Value: pathErr.Value})
			continue
		}
		out = append(out, err)
	}
	return out
}

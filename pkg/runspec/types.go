// SPDX-License-Identifier: MPL-2.0

package runspec

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ModeSerial runs the executable as a single OS process with no
	// parallel launcher.
	ModeSerial ExecutionMode = "serial"
	// ModeMulti runs the executable through a parallel-process launcher
	// (e.g. mpirun, srun) with a resolved task count.
	ModeMulti ExecutionMode = "multi"

	// SchedulerMPI launches multi-task runs with mpirun and the -np flag.
	SchedulerMPI Scheduler = "mpi"
	// SchedulerSlurm launches multi-task runs with srun and the -n flag.
	SchedulerSlurm Scheduler = "slurm"
	// SchedulerNone disables scheduler-based launching. Multi-task runs
	// then require an explicit launcher command.
	SchedulerNone Scheduler = "none"
)

var (
	// ErrInvalidExecutionMode is the sentinel error wrapped by InvalidExecutionModeError.
	ErrInvalidExecutionMode = errors.New("invalid execution mode")
	// ErrInvalidScheduler is the sentinel error wrapped by InvalidSchedulerError.
	ErrInvalidScheduler = errors.New("invalid scheduler")
	// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
	ErrInvalidFilesystemPath = errors.New("invalid filesystem path")
)

type (
	// ExecutionMode selects how the executable is launched. It replaces
	// the legacy multi/serial boolean pair with a single enumerated
	// value, which removes the invalid both-set and neither-set states.
	ExecutionMode string

	// InvalidExecutionModeError is returned when an ExecutionMode value
	// is not recognized. It wraps ErrInvalidExecutionMode for errors.Is()
	// compatibility.
	InvalidExecutionModeError struct {
		Value ExecutionMode
	}

	// Scheduler identifies the batch scheduler family used to derive the
	// parallel launcher command and its task-count flag.
	Scheduler string

	// InvalidSchedulerError is returned when a Scheduler value is not
	// recognized. It wraps ErrInvalidScheduler for errors.Is() compatibility.
	InvalidSchedulerError struct {
		Value Scheduler
	}

	// FilesystemPath represents an absolute or relative filesystem path.
	// A valid path must be non-empty and not whitespace-only.
	FilesystemPath string

	// InvalidFilesystemPathError is returned when a FilesystemPath value
	// is empty or whitespace-only.
	InvalidFilesystemPathError struct {
		Field string
		Value FilesystemPath
	}
)

// IsValid returns whether the ExecutionMode is one of the known variants.
func (m ExecutionMode) IsValid() (bool, []error) {
	switch m {
	case ModeSerial, ModeMulti:
		return true, nil
	default:
		return false, []error{&InvalidExecutionModeError{Value: m}}
	}
}

// String returns the string representation of the ExecutionMode.
func (m ExecutionMode) String() string { return string(m) }

// Error implements the error interface.
func (e *InvalidExecutionModeError) Error() string {
	return fmt.Sprintf("invalid execution mode %q (must be %q or %q)", e.Value, ModeSerial, ModeMulti)
}

// Unwrap returns ErrInvalidExecutionMode for errors.Is() compatibility.
func (e *InvalidExecutionModeError) Unwrap() error { return ErrInvalidExecutionMode }

// IsValid returns whether the Scheduler is one of the known variants.
// The zero value ("") is valid and means "no scheduler configured".
func (s Scheduler) IsValid() (bool, []error) {
	switch s {
	case "", SchedulerNone, SchedulerMPI, SchedulerSlurm:
		return true, nil
	default:
		return false, []error{&InvalidSchedulerError{Value: s}}
	}
}

// String returns the string representation of the Scheduler.
func (s Scheduler) String() string { return string(s) }

// Error implements the error interface.
func (e *InvalidSchedulerError) Error() string {
	return fmt.Sprintf("invalid scheduler %q (must be %q, %q or %q)",
		e.Value, SchedulerMPI, SchedulerSlurm, SchedulerNone)
}

// Unwrap returns ErrInvalidScheduler for errors.Is() compatibility.
func (e *InvalidSchedulerError) Unwrap() error { return ErrInvalidScheduler }

// String returns the string representation of the FilesystemPath.
func (p FilesystemPath) String() string { return string(p) }

// IsValid returns whether the FilesystemPath is valid.
// A valid path must be non-empty and not whitespace-only.
func (p FilesystemPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidFilesystemPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidFilesystemPathError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s %q: must be non-empty", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid filesystem path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidFilesystemPath for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }

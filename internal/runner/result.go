// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"time"

	"github.com/appexec/appexec/pkg/runspec"
)

// Result reports the outcome of a completed run.
type Result struct {
	// ExitCode is the process exit code; -1 when the process was
	// terminated before producing one (e.g. on timeout).
	ExitCode int
	// Argv is the fully resolved command line, launcher included.
	Argv []string
	// Mode is the resolved execution mode for the run.
	Mode runspec.ExecutionMode
	// NTasks is the resolved task count (always 1 for serial runs).
	NTasks int
	// RunPath is the working directory the process ran in.
	RunPath string
	// StdoutPath and StderrPath locate the captured output and error
	// logs.
	StdoutPath string
	StderrPath string
	// Duration is the wall time between spawn and exit.
	Duration time.Duration
}

// Success reports whether the process exited with code zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// SPDX-License-Identifier: MPL-2.0

// Package launcher builds the argv for a run: the bare executable in
// serial mode, or a scheduler launcher (mpirun, srun, or a custom
// command) wrapping the executable in multi mode.
package launcher

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/appexec/appexec/internal/envutil"
	"github.com/appexec/appexec/internal/platform"
	"github.com/appexec/appexec/pkg/runspec"

	"mvdan.cc/sh/v3/shell"
)

var (
	// ErrZeroTasks is returned when a multi-task run resolves to zero
	// tasks.
	ErrZeroTasks = errors.New("multi-task runs require a non-zero task count")
	// ErrNoLauncher is returned when a multi-task run has neither a
	// scheduler nor an explicit launcher command.
	ErrNoLauncher = errors.New("multi-task runs require a scheduler or an explicit launcher")
)

// DefaultTaskEnvKeys are the environment variables consulted, in order,
// for the task count when a spec does not fix ntasks.
var DefaultTaskEnvKeys = []string{"APPEXEC_NTASKS", "SLURM_NTASKS", "PBS_NP", "NTASKS"}

// Options carries configuration-level launcher settings.
type Options struct {
	// TaskEnvKeys overrides DefaultTaskEnvKeys when non-empty.
	TaskEnvKeys []string
	// Override is a configuration-level launcher command used when the
	// spec itself does not set one.
	Override string
}

// Build resolves the full argv for the run. execPath must already be
// resolved to a launchable path (see runner.ResolveExec). In serial mode
// the argv is just the executable; in multi mode it is the launcher
// command, the scheduler's task-count flag when one applies, and the
// executable.
func Build(spec *runspec.RunSpec, execPath string, opts Options) ([]string, error) {
	if spec.ResolvedMode() == runspec.ModeSerial {
		return []string{execPath}, nil
	}

	ntasks, err := ResolveTasks(spec, opts.TaskEnvKeys)
	if err != nil {
		return nil, err
	}

	command := spec.Launcher
	if command == "" {
		command = opts.Override
	}
	if command == "" {
		command, err = schedulerLauncher(spec.Scheduler)
		if err != nil {
			return nil, err
		}
	}

	fields, err := shell.Fields(command, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to split launcher command %q: %w", command, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("launcher command %q is empty after word splitting", command)
	}

	launcherPath, err := platform.AppPath(fields[0])
	if err != nil {
		return nil, err
	}

	argv := append([]string{launcherPath}, fields[1:]...)
	if flag := nprocsFlag(spec.Scheduler); flag != "" {
		argv = append(argv, flag, strconv.Itoa(ntasks))
	}
	argv = append(argv, execPath)

	return argv, nil
}

// ResolveTasks determines the task count for a run: the spec's explicit
// ntasks when set, otherwise the first usable value among the task
// environment keys. Serial runs always resolve to one task.
func ResolveTasks(spec *runspec.RunSpec, taskEnvKeys []string) (int, error) {
	if spec.ResolvedMode() == runspec.ModeSerial {
		return 1, nil
	}
	if spec.NTasks > 0 {
		return spec.NTasks, nil
	}

	keys := taskEnvKeys
	if len(keys) == 0 {
		keys = DefaultTaskEnvKeys
	}
	for _, key := range keys {
		if n, ok := envutil.GetInt(key); ok {
			if n == 0 {
				return 0, fmt.Errorf("%w: %s is set to 0", ErrZeroTasks, key)
			}
			if n > 0 {
				return n, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: set ntasks in the run spec or export one of %v", ErrZeroTasks, keys)
}

// schedulerLauncher maps a scheduler family to its launcher binary.
func schedulerLauncher(s runspec.Scheduler) (string, error) {
	switch s {
	case runspec.SchedulerMPI:
		return "mpirun", nil
	case runspec.SchedulerSlurm:
		return "srun", nil
	default:
		return "", ErrNoLauncher
	}
}

// nprocsFlag returns the scheduler's task-count flag, or "" when the
// scheduler family does not define one.
func nprocsFlag(s runspec.Scheduler) string {
	switch s {
	case runspec.SchedulerMPI:
		return "-np"
	case runspec.SchedulerSlurm:
		return "-n"
	default:
		return ""
	}
}

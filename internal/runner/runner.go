// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/appexec/appexec/internal/launcher"
	"github.com/appexec/appexec/internal/logging"
	"github.com/appexec/appexec/pkg/runspec"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Runner executes run specifications one at a time. The zero value
	// obtained from New is ready to use; options adjust launcher
	// resolution and log-file handling.
	Runner struct {
		logger       *log.Logger
		launcherOpts launcher.Options
		appendLogs   bool
	}

	// Option configures a Runner.
	Option func(*Runner)
)

// WithLauncherOptions supplies configuration-level launcher settings
// (task env keys, launcher override).
func WithLauncherOptions(opts launcher.Options) Option {
	return func(r *Runner) {
		r.launcherOpts = opts
	}
}

// WithAppendLogs opens stdout/stderr destinations in append mode instead
// of truncating them.
func WithAppendLogs(appendLogs bool) Option {
	return func(r *Runner) {
		r.appendLogs = appendLogs
	}
}

// WithLogger overrides the runner's logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New builds a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger: logging.Named("runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the spec and blocks until the process exits. On a
// non-zero exit the Result is returned together with an ExecutionError;
// for configuration and launch failures the Result is nil.
func (r *Runner) Run(ctx context.Context, spec *runspec.RunSpec) (*Result, error) {
	if errs := spec.Validate(); len(errs) > 0 {
		return nil, &ConfigurationError{Cause: errs}
	}

	// The executable must resolve before any side effect; a missing
	// binary fails without creating the run directory or log files.
	execPath, err := ResolveExec(spec.ExecPath)
	if err != nil {
		return nil, err
	}

	argv, err := launcher.Build(spec, execPath, r.launcherOpts)
	if err != nil {
		return nil, &ConfigurationError{Cause: err}
	}
	ntasks, err := launcher.ResolveTasks(spec, r.launcherOpts.TaskEnvKeys)
	if err != nil {
		return nil, &ConfigurationError{Cause: err}
	}

	timeout, err := spec.ResolvedTimeout()
	if err != nil {
		return nil, &ConfigurationError{Cause: err}
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	runPath := string(spec.RunPath)
	if err := os.MkdirAll(runPath, 0o755); err != nil {
		return nil, &ConfigurationError{Cause: fmt.Errorf("failed to create run path %s: %w", runPath, err)}
	}

	stdoutPath := resolveLogPath(spec.Stdout, runPath, runspec.DefaultStdoutName)
	stderrPath := resolveLogPath(spec.Stderr, runPath, runspec.DefaultStderrName)

	stdout, err := r.openLog(stdoutPath)
	if err != nil {
		return nil, &ConfigurationError{Cause: err}
	}
	defer stdout.Close()
	stderr, err := r.openLog(stderrPath)
	if err != nil {
		return nil, &ConfigurationError{Cause: err}
	}
	defer stderr.Close()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = runPath
	cmd.Env = buildEnv(spec.Env)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if len(spec.Stdin) > 0 {
		cmd.Stdin = strings.NewReader(strings.Join(spec.Stdin, "\n") + "\n")
	}

	r.logger.Info("launching executable",
		"exec", execPath, "run_path", runPath,
		"mode", spec.ResolvedMode(), "ntasks", ntasks)
	r.logger.Debug("resolved command", "argv", argv)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{ExecPath: execPath, Cause: err}
	}

	waitErr := cmd.Wait()
	result := &Result{
		ExitCode:   0,
		Argv:       argv,
		Mode:       spec.ResolvedMode(),
		NTasks:     ntasks,
		RunPath:    runPath,
		StdoutPath: stdoutPath,
		StderrPath: stderrPath,
		Duration:   time.Since(start),
	}

	if waitErr != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			waitErr = fmt.Errorf("%w: %w", ctxErr, waitErr)
		}
		r.logger.Error("executable failed",
			"exec", execPath, "exit_code", result.ExitCode, "stderr", stderrPath)
		return result, &ExecutionError{
			ExecPath:   execPath,
			ExitCode:   result.ExitCode,
			StderrPath: stderrPath,
			Cause:      waitErr,
		}
	}

	r.logger.Info("executable completed",
		"exec", execPath, "exit_code", result.ExitCode,
		"duration", result.Duration,
		"stdout", stdoutPath, "stderr", stderrPath)
	return result, nil
}

// ResolveExec resolves the spec's executable reference to a launchable
// path. Bare names go through PATH; explicit paths must exist, be
// regular, and have an execute bit. All failures are LaunchErrors.
func ResolveExec(p runspec.FilesystemPath) (string, error) {
	ref := string(p)
	if !strings.ContainsRune(ref, os.PathSeparator) {
		path, err := exec.LookPath(ref)
		if err != nil {
			return "", &LaunchError{ExecPath: ref, Cause: err}
		}
		return path, nil
	}

	info, err := os.Stat(ref)
	if err != nil {
		return "", &LaunchError{ExecPath: ref, Cause: err}
	}
	if info.IsDir() {
		return "", &LaunchError{ExecPath: ref, Cause: fmt.Errorf("is a directory")}
	}
	if info.Mode().Perm()&0o111 == 0 {
		return "", &LaunchError{ExecPath: ref, Cause: fmt.Errorf("file is not executable")}
	}
	abs, err := filepath.Abs(ref)
	if err != nil {
		return "", &LaunchError{ExecPath: ref, Cause: err}
	}
	return abs, nil
}

func (r *Runner) openLog(path string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if r.appendLogs {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

// resolveLogPath applies the default name and anchors relative
// destinations at the run path.
func resolveLogPath(dest runspec.FilesystemPath, runPath, defaultName string) string {
	path := string(dest)
	if path == "" {
		path = defaultName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(runPath, path)
	}
	return path
}

// buildEnv merges extra variables over the host environment in sorted
// key order so runs are reproducible.
func buildEnv(extra map[string]string) []string {
	env := os.Environ()
	if len(extra) == 0 {
		return env
	}
	keys := maps.Keys(extra)
	slices.Sort(keys)
	for _, k := range keys {
		env = append(env, k+"="+extra[k])
	}
	return env
}

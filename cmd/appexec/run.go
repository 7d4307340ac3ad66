// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/appexec/appexec/internal/config"
	"github.com/appexec/appexec/internal/issue"
	"github.com/appexec/appexec/internal/launcher"
	"github.com/appexec/appexec/internal/report"
	"github.com/appexec/appexec/internal/runner"
	"github.com/appexec/appexec/pkg/runspec"

	"github.com/spf13/cobra"
)

var (
	// runMode overrides the spec's execution mode.
	runMode string
	// runNTasks overrides the spec's task count.
	runNTasks int
	// runTimeout overrides the spec's wall-time bound.
	runTimeout string
	// runDryRun prints the resolved command without executing it.
	runDryRun bool
	// runSummary prints a result table after the run.
	runSummary bool

	runCmd = &cobra.Command{
		Use:   "run <runspec.yaml> [overlay.yaml ...]",
		Short: "Execute a run specification",
		Long: `Execute the run described by a YAML run specification.

With multiple files, documents are merged in order and later files win,
so a site-wide base spec can be layered under per-run overrides.

The process exit code is propagated: a run that fails with exit code N
makes appexec exit with code N.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringVar(&runMode, "mode", "", "override the execution mode (serial|multi)")
	runCmd.Flags().IntVar(&runNTasks, "ntasks", 0, "override the task count for multi-task runs")
	runCmd.Flags().StringVar(&runTimeout, "timeout", "", "override the wall-time bound (e.g. 30m)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "resolve and print the command without executing")
	runCmd.Flags().BoolVar(&runSummary, "summary", false, "print a result table after the run")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("load configuration").
			WithSuggestion("Run 'appexec config init' to create a default config").
			Wrap(err).
			BuildError()
	}

	spec, err := loadSpec(args)
	if err != nil {
		ae := issue.NewErrorContext().
			WithOperation("parse run spec").
			WithResource(strings.Join(args, ", ")).
			WithSuggestion("Run 'appexec validate' on the file for details").
			Wrap(err).
			BuildError()
		fmt.Fprintln(os.Stderr, issue.Render(ae))
		return err
	}

	applyRunOverrides(spec, cfg)

	r := runner.New(
		runner.WithLauncherOptions(launcher.Options{
			TaskEnvKeys: cfg.TaskEnvKeys,
			Override:    cfg.Launcher,
		}),
		runner.WithAppendLogs(cfg.AppendLogs),
	)

	if runDryRun {
		return printDryRun(cmd, spec, cfg)
	}

	result, err := r.Run(cmd.Context(), spec)
	if err != nil {
		var execErr *runner.ExecutionError
		if errors.As(err, &execErr) {
			if runSummary && result != nil {
				fmt.Fprintln(cmd.OutOrStdout(), report.ResultSummary(result))
			}
			ae := issue.NewErrorContext().
				WithOperation("execute " + execErr.ExecPath).
				WithSuggestion("Inspect the error log at " + execErr.StderrPath).
				Wrap(err).
				BuildError()
			fmt.Fprintln(os.Stderr, issue.Render(ae))
			return &ExitError{Code: execErr.ExitCode, Err: err}
		}
		return err
	}

	if runSummary {
		fmt.Fprintln(cmd.OutOrStdout(), report.ResultSummary(result))
	}
	return nil
}

// loadSpec parses one spec file, or merges several in order.
func loadSpec(paths []string) (*runspec.RunSpec, error) {
	if len(paths) == 1 {
		return runspec.Parse(runspec.FilesystemPath(paths[0]))
	}
	fsPaths := make([]runspec.FilesystemPath, 0, len(paths))
	for _, p := range paths {
		fsPaths = append(fsPaths, runspec.FilesystemPath(p))
	}
	return runspec.ParseConcat(fsPaths...)
}

// applyRunOverrides layers CLI flags and config defaults onto the spec.
// Flags win over the spec; the spec wins over config defaults.
func applyRunOverrides(spec *runspec.RunSpec, cfg *config.Config) {
	if runMode != "" {
		spec.Mode = runspec.ExecutionMode(runMode)
		spec.Multi = nil
		spec.Serial = nil
	}
	if runNTasks > 0 {
		spec.NTasks = runNTasks
	}
	if runTimeout != "" {
		spec.Timeout = runTimeout
	}
	if spec.Scheduler == "" && cfg.Scheduler != "" {
		spec.Scheduler = runspec.Scheduler(cfg.Scheduler)
	}
}

// printDryRun resolves the command line and prints it without spawning.
func printDryRun(cmd *cobra.Command, spec *runspec.RunSpec, cfg *config.Config) error {
	execPath, err := runner.ResolveExec(spec.ExecPath)
	if err != nil {
		return err
	}
	argv, err := launcher.Build(spec, execPath, launcher.Options{
		TaskEnvKeys: cfg.TaskEnvKeys,
		Override:    cfg.Launcher,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
		SubtitleStyle.Render("would execute:"),
		PathStyle.Render(strings.Join(argv, " ")))
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
		SubtitleStyle.Render("in:"), spec.RunPath)
	return nil
}

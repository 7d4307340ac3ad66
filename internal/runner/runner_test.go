// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/appexec/appexec/pkg/runspec"
)

// writeScript drops an executable shell script into dir and returns its
// path. Runner tests exercise real child processes, so they are skipped
// on platforms without /bin/sh.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("runner tests require /bin/sh")
	}
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestRunSuccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exe := writeScript(t, dir, "ok.sh", "echo out-line\necho err-line >&2\nexit 0\n")
	runPath := filepath.Join(dir, "run")

	spec := &runspec.RunSpec{
		ExecPath: runspec.FilesystemPath(exe),
		RunPath:  runspec.FilesystemPath(runPath),
	}

	result, err := New().Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !result.Success() {
		t.Errorf("Result.Success() = false, exit code %d", result.ExitCode)
	}
	if result.Mode != runspec.ModeSerial {
		t.Errorf("Result.Mode = %q, want serial", result.Mode)
	}
	if result.NTasks != 1 {
		t.Errorf("Result.NTasks = %d, want 1", result.NTasks)
	}

	wantStdout := filepath.Join(runPath, runspec.DefaultStdoutName)
	wantStderr := filepath.Join(runPath, runspec.DefaultStderrName)
	if result.StdoutPath != wantStdout {
		t.Errorf("StdoutPath = %q, want %q", result.StdoutPath, wantStdout)
	}
	if result.StderrPath != wantStderr {
		t.Errorf("StderrPath = %q, want %q", result.StderrPath, wantStderr)
	}

	out, err := os.ReadFile(wantStdout)
	if err != nil {
		t.Fatalf("default stdout log missing: %v", err)
	}
	if !strings.Contains(string(out), "out-line") {
		t.Errorf("stdout log = %q, want captured output", out)
	}
	errLog, err := os.ReadFile(wantStderr)
	if err != nil {
		t.Fatalf("default stderr log missing: %v", err)
	}
	if !strings.Contains(string(errLog), "err-line") {
		t.Errorf("stderr log = %q, want captured output", errLog)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exe := writeScript(t, dir, "fail.sh", "echo boom >&2\nexit 7\n")
	runPath := filepath.Join(dir, "run")

	spec := &runspec.RunSpec{
		ExecPath: runspec.FilesystemPath(exe),
		RunPath:  runspec.FilesystemPath(runPath),
	}

	result, err := New().Run(context.Background(), spec)
	if err == nil {
		t.Fatal("Run() succeeded, want execution failure")
	}
	if !errors.Is(err, ErrExecution) {
		t.Errorf("error does not wrap ErrExecution: %v", err)
	}
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error is not an *ExecutionError: %v", err)
	}
	if execErr.ExitCode != 7 {
		t.Errorf("ExecutionError.ExitCode = %d, want 7", execErr.ExitCode)
	}
	if result == nil {
		t.Fatal("Run() returned nil Result for a process that ran")
	}
	if result.ExitCode != 7 {
		t.Errorf("Result.ExitCode = %d, want 7", result.ExitCode)
	}
	if execErr.StderrPath != result.StderrPath {
		t.Errorf("StderrPath mismatch: %q vs %q", execErr.StderrPath, result.StderrPath)
	}
}

func TestRunMissingExecutableFailsBeforeSideEffects(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runPath := filepath.Join(dir, "run")

	spec := &runspec.RunSpec{
		ExecPath: runspec.FilesystemPath(filepath.Join(dir, "nope")),
		RunPath:  runspec.FilesystemPath(runPath),
	}

	result, err := New().Run(context.Background(), spec)
	if err == nil {
		t.Fatal("Run() succeeded for missing executable")
	}
	if !errors.Is(err, ErrLaunch) {
		t.Errorf("error does not wrap ErrLaunch: %v", err)
	}
	if result != nil {
		t.Errorf("Run() returned a Result for a run that never launched")
	}
	if _, statErr := os.Stat(runPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("run path was created despite launch failure")
	}
}

func TestRunInvalidSpec(t *testing.T) {
	t.Parallel()

	spec := &runspec.RunSpec{}
	_, err := New().Run(context.Background(), spec)
	if err == nil {
		t.Fatal("Run() succeeded for an invalid spec")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error does not wrap ErrConfiguration: %v", err)
	}
}

func TestRunStdinLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exe := writeScript(t, dir, "read.sh", "cat > consumed.txt\n")
	runPath := filepath.Join(dir, "run")

	spec := &runspec.RunSpec{
		ExecPath: runspec.FilesystemPath(exe),
		RunPath:  runspec.FilesystemPath(runPath),
		Stdin:    []string{"namelist.input", "2", "done"},
	}

	if _, err := New().Run(context.Background(), spec); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// The script runs with the run path as working directory.
	data, err := os.ReadFile(filepath.Join(runPath, "consumed.txt"))
	if err != nil {
		t.Fatalf("stdin capture missing: %v", err)
	}
	want := "namelist.input\n2\ndone\n"
	if string(data) != want {
		t.Errorf("child stdin = %q, want %q", data, want)
	}
}

func TestRunCustomLogDestinations(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exe := writeScript(t, dir, "ok.sh", "echo hello\n")
	runPath := filepath.Join(dir, "run")
	absOut := filepath.Join(dir, "elsewhere.out")

	spec := &runspec.RunSpec{
		ExecPath: runspec.FilesystemPath(exe),
		RunPath:  runspec.FilesystemPath(runPath),
		Stdout:   runspec.FilesystemPath(absOut),
		Stderr:   "custom.err",
	}

	result, err := New().Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.StdoutPath != absOut {
		t.Errorf("StdoutPath = %q, want absolute destination kept", result.StdoutPath)
	}
	wantStderr := filepath.Join(runPath, "custom.err")
	if result.StderrPath != wantStderr {
		t.Errorf("StderrPath = %q, want %q (anchored at run path)", result.StderrPath, wantStderr)
	}
	if _, err := os.Stat(absOut); err != nil {
		t.Errorf("custom stdout log missing: %v", err)
	}
}

func TestRunAppendLogs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exe := writeScript(t, dir, "ok.sh", "echo line\n")
	runPath := filepath.Join(dir, "run")

	spec := &runspec.RunSpec{
		ExecPath: runspec.FilesystemPath(exe),
		RunPath:  runspec.FilesystemPath(runPath),
	}

	r := New(WithAppendLogs(true))
	for i := 0; i < 2; i++ {
		if _, err := r.Run(context.Background(), spec); err != nil {
			t.Fatalf("Run() #%d error: %v", i+1, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(runPath, runspec.DefaultStdoutName))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "line"); got != 2 {
		t.Errorf("append mode kept %d lines, want 2", got)
	}
}

func TestRunEnvPassedToChild(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exe := writeScript(t, dir, "env.sh", `echo "$MODEL_CASE"`+"\n")
	runPath := filepath.Join(dir, "run")

	spec := &runspec.RunSpec{
		ExecPath: runspec.FilesystemPath(exe),
		RunPath:  runspec.FilesystemPath(runPath),
		Env:      map[string]string{"MODEL_CASE": "c48_atm"},
	}

	if _, err := New().Run(context.Background(), spec); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(runPath, runspec.DefaultStdoutName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "c48_atm") {
		t.Errorf("stdout = %q, want spec env visible to child", data)
	}
}

func TestRunTimeout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exe := writeScript(t, dir, "slow.sh", "sleep 10\n")
	runPath := filepath.Join(dir, "run")

	spec := &runspec.RunSpec{
		ExecPath: runspec.FilesystemPath(exe),
		RunPath:  runspec.FilesystemPath(runPath),
		Timeout:  "200ms",
	}

	start := time.Now()
	result, err := New().Run(context.Background(), spec)
	if err == nil {
		t.Fatal("Run() succeeded, want timeout failure")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Run() took %v, timeout was not enforced", elapsed)
	}
	if !errors.Is(err, ErrExecution) {
		t.Errorf("error does not wrap ErrExecution: %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error does not carry the deadline cause: %v", err)
	}
	if result == nil {
		t.Error("Run() returned nil Result for a killed process")
	}
}

func TestResolveExec(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("bare name resolves through PATH", func(t *testing.T) {
		t.Parallel()
		path, err := ResolveExec("sh")
		if err != nil {
			t.Fatalf("ResolveExec() error: %v", err)
		}
		if !filepath.IsAbs(path) {
			t.Errorf("ResolveExec() = %q, want absolute path", path)
		}
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		t.Parallel()
		_, err := ResolveExec(runspec.FilesystemPath(filepath.Join(dir, "missing")))
		if !errors.Is(err, ErrLaunch) {
			t.Errorf("error does not wrap ErrLaunch: %v", err)
		}
	})

	t.Run("directories are rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ResolveExec(runspec.FilesystemPath(dir))
		if !errors.Is(err, ErrLaunch) {
			t.Errorf("error does not wrap ErrLaunch: %v", err)
		}
	})

	t.Run("non-executable files are rejected", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("execute bits are not meaningful on windows")
		}
		plain := filepath.Join(dir, "plain.txt")
		if err := os.WriteFile(plain, []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := ResolveExec(runspec.FilesystemPath(plain))
		if !errors.Is(err, ErrLaunch) {
			t.Errorf("error does not wrap ErrLaunch: %v", err)
		}
	})
}

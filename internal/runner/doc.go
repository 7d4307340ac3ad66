// SPDX-License-Identifier: MPL-2.0

// Package runner executes a run specification as a single-shot, blocking
// sequence: validate, resolve the launcher argv, create the run
// directory, open the log destinations, spawn, feed standard input, wait,
// and report.
//
// Failures are classified into three kinds: ConfigurationError (the spec
// or global configuration is unusable), LaunchError (the process could
// not be started; raised before any log file is created when the
// executable does not resolve), and ExecutionError (the process ran and
// exited non-zero; the Result is still returned alongside it). Nothing is
// retried.
//
// The runner coordinates no concurrency of its own. Callers running
// several specs at once are responsible for keeping run paths and log
// destinations disjoint.
package runner

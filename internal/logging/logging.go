// SPDX-License-Identifier: MPL-2.0

// Package logging configures the process-wide charmbracelet logger.
// CLI entry points call Setup once; packages obtain prefixed loggers
// through Named.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Setup configures the default logger from a level name ("debug",
// "info", "warn", "error"). Verbose forces the debug level and caller
// reporting regardless of the configured level.
func Setup(level string, verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetTimeFormat(time.RFC3339)
	log.SetReportTimestamp(true)

	if verbose {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
		return
	}

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "warn", "warning":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// Named returns a logger with the given prefix, sharing the default
// logger's configuration.
func Named(prefix string) *log.Logger {
	return log.Default().WithPrefix(prefix)
}

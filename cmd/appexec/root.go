// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/appexec/appexec/internal/config"
	"github.com/appexec/appexec/internal/issue"
	"github.com/appexec/appexec/internal/logging"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "appexec",
		Short: "A declarative launcher for batch executables",
		Long: TitleStyle.Render("appexec") + SubtitleStyle.Render(" - a declarative launcher for batch executables") + `

appexec runs external programs described by YAML run specifications:
the binary, the run directory, ordered standard input lines, and the
captured stdout/stderr destinations. Runs execute serially or through
a parallel launcher (mpirun, srun, or a custom command).

` + SubtitleStyle.Render("Examples:") + `
  appexec run forecast.yaml          Execute a run specification
  appexec run base.yaml site.yaml    Layer specs; later files win
  appexec validate forecast.yaml     Check a spec without running it
  appexec fetch --list https://data.example.com/inputs/ --ext nc
  appexec config init                Write the default configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/appexec/config.toml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(prepCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig applies the --config flag and configures logging from
// the loaded configuration.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFileOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info", verbose)
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}
	logging.Setup(cfg.LogLevel, verbose)
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// are rendered with their suggestions; verbose mode shows the cause chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

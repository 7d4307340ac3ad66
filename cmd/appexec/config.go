// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/appexec/appexec/internal/config"
	"github.com/appexec/appexec/internal/report"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the global configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		rows := [][]string{
			{"scheduler", cfg.Scheduler},
			{"launcher", cfg.Launcher},
			{"task_env_keys", strings.Join(cfg.TaskEnvKeys, ", ")},
			{"log_level", cfg.LogLevel},
			{"append_logs", strconv.FormatBool(cfg.AppendLogs)},
			{"fetch.timeout", cfg.Fetch.Timeout},
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Compose([]string{"setting", "value"}, rows))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := config.FilePath()
		if err != nil {
			return err
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n",
			SuccessStyle.Render("✓"), PathStyle.Render(path))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := config.FilePath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"path"
	"time"

	"github.com/appexec/appexec/internal/config"
	"github.com/appexec/appexec/internal/fetch"
	"github.com/appexec/appexec/internal/report"

	"github.com/spf13/cobra"
)

var (
	// fetchList lists anchors on an index page instead of downloading.
	fetchList bool
	// fetchExt filters listed entries by extension.
	fetchExt string
	// fetchIgnoreMissing turns a 404 into a warning instead of an error.
	fetchIgnoreMissing bool

	fetchCmd = &cobra.Command{
		Use:   "fetch <url> [dest]",
		Short: "Retrieve remote run inputs over HTTP",
		Long: `Download a remote file, or list the files linked from an index page.

Without a destination argument the file is saved under its remote name
in the current directory.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runFetch,
	}
)

func init() {
	fetchCmd.Flags().BoolVar(&fetchList, "list", false, "list linked files instead of downloading")
	fetchCmd.Flags().StringVar(&fetchExt, "ext", "", "filter listed files by extension (with --list)")
	fetchCmd.Flags().BoolVar(&fetchIgnoreMissing, "ignore-missing", false, "treat a missing remote file as a warning")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	timeout, err := time.ParseDuration(cfg.Fetch.Timeout)
	if err != nil {
		return fmt.Errorf("invalid fetch.timeout %q: %w", cfg.Fetch.Timeout, err)
	}

	client := fetch.NewClient(timeout)
	url := args[0]

	if fetchList {
		entries, err := client.List(cmd.Context(), url, fetchExt)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Listing(url, entries))
		return nil
	}

	dest := path.Base(url)
	if len(args) == 2 {
		dest = args[1]
	}
	return client.GetFile(cmd.Context(), url, dest, fetchIgnoreMissing)
}

// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/appexec/appexec/internal/envutil"
	"github.com/appexec/appexec/internal/platform"
	"github.com/appexec/appexec/internal/timeutil"
	"github.com/appexec/appexec/internal/tmpl"

	"github.com/spf13/cobra"
)

var (
	// prepValues holds the key=value pairs passed via --set.
	prepValues []string

	prepCmd = &cobra.Command{
		Use:   "prep <template> <out>",
		Short: "Render an input-file template into a run directory",
		Long: `Render a text template (a namelist, parameter card, or similar input
file) against a values map and write the result.

Values come from repeated --set key=value flags; value literals are
coerced to bool, int, or float where they parse as one. The built-in
values Timestamp, Host, and User are always available. Referencing a
key that was not supplied is an error, so incomplete input files never
reach the executable silently.`,
		Args: cobra.ExactArgs(2),
		RunE: runPrep,
	}
)

func init() {
	prepCmd.Flags().StringArrayVar(&prepValues, "set", nil, "template value as key=value (repeatable)")
}

func runPrep(cmd *cobra.Command, args []string) error {
	values, err := buildPrepValues(prepValues)
	if err != nil {
		return err
	}

	if err := tmpl.WriteFile(args[0], args[1], values); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s rendered %s\n",
		SuccessStyle.Render("✓"), PathStyle.Render(args[1]))
	return nil
}

// buildPrepValues merges --set pairs over the built-in values.
func buildPrepValues(pairs []string) (map[string]any, error) {
	timestamp, err := timeutil.Now(timeutil.GlobalFormat)
	if err != nil {
		return nil, err
	}
	values := map[string]any{
		"Timestamp": timestamp,
		"Host":      platform.Hostname(),
		"User":      platform.Username(),
	}

	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --set value %q: expected key=value", pair)
		}
		values[key] = envutil.Coerce(raw)
	}
	return values, nil
}

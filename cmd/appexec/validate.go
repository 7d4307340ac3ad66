// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/appexec/appexec/internal/issue"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <runspec.yaml> [overlay.yaml ...]",
	Short: "Validate a run specification without executing it",
	Long: `Parse a run specification, check it against the schema, and run
semantic validation. Nothing is executed and no run directory is created.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := loadSpec(args)
		if err != nil {
			ae := issue.NewErrorContext().
				WithOperation("validate run spec").
				WithResource(args[0]).
				WithSuggestion("Field names and allowed values are listed in 'appexec validate --help'").
				Wrap(err).
				BuildError()
			fmt.Fprintln(os.Stderr, issue.Render(ae))
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s is valid (mode: %s)\n",
			SuccessStyle.Render("✓"),
			PathStyle.Render(string(spec.FilePath)),
			spec.ResolvedMode())
		return nil
	},
}

// SPDX-License-Identifier: MPL-2.0

// Package report renders human-readable summaries (run outcomes, remote
// listings, configuration dumps) as styled terminal tables.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/appexec/appexec/internal/runner"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
)

// Compose renders headers and rows as a bordered table.
func Compose(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}

// ResultSummary renders a completed run as a two-column table.
func ResultSummary(res *runner.Result) string {
	status := "success"
	if !res.Success() {
		status = fmt.Sprintf("failed (exit code %d)", res.ExitCode)
	}

	rows := [][]string{
		{"status", status},
		{"mode", res.Mode.String()},
		{"ntasks", strconv.Itoa(res.NTasks)},
		{"run path", res.RunPath},
		{"stdout", res.StdoutPath},
		{"stderr", res.StderrPath},
		{"duration", res.Duration.Round(time.Millisecond).String()},
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 && col == 1 {
				if res.Success() {
					return okStyle
				}
				return failStyle
			}
			return cellStyle
		}).
		Rows(rows...)
	return t.Render()
}

// Listing renders remote file names as a single-column table.
func Listing(title string, entries []string) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e})
	}
	return Compose([]string{title}, rows)
}

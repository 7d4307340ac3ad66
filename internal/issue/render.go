// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown converts an ActionableError to a markdown document: the
// message as a heading, suggestions as a list, and the cause in a code
// fence.
func Markdown(e *ActionableError) string {
	var md strings.Builder

	md.WriteString("## Failed to ")
	md.WriteString(e.Operation)
	md.WriteString("\n")
	if e.Resource != "" {
		md.WriteString("\n`")
		md.WriteString(e.Resource)
		md.WriteString("`\n")
	}
	if e.Cause != nil {
		md.WriteString("\n```\n")
		md.WriteString(e.Cause.Error())
		md.WriteString("\n```\n")
	}
	if len(e.Suggestions) > 0 {
		md.WriteString("\n")
		for _, s := range e.Suggestions {
			md.WriteString("- ")
			md.WriteString(s)
			md.WriteString("\n")
		}
	}

	return md.String()
}

// Render renders the error's markdown form for the terminal. It falls
// back to the plain Format output when the renderer cannot be built.
func Render(e *ActionableError) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return e.Format(false)
	}
	out, err := r.Render(Markdown(e))
	if err != nil {
		return e.Format(false)
	}
	return strings.TrimRight(out, "\n")
}

// SPDX-License-Identifier: MPL-2.0

// Package tmpl renders text templates against a values mapping, used to
// generate input files (namelists, parameter cards) into run directories.
// Referencing a key that is absent from the values map is an error, so
// incomplete renders never reach the executable silently.
package tmpl

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
)

// Render executes the template source against values and returns the
// rendered text.
func Render(name, source string, values map[string]any) (string, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(source)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderFile reads the template at tmplPath and renders it against
// values.
func RenderFile(tmplPath string, values map[string]any) (string, error) {
	source, err := os.ReadFile(tmplPath)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", tmplPath, err)
	}
	return Render(tmplPath, string(source), values)
}

// WriteFile renders the template at tmplPath against values and writes
// the result to outPath, truncating any existing file.
func WriteFile(tmplPath, outPath string, values map[string]any) error {
	rendered, err := RenderFile(tmplPath, values)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write rendered template to %s: %w", outPath, err)
	}
	return nil
}

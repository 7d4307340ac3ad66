// SPDX-License-Identifier: MPL-2.0

package tmpl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		values  map[string]any
		want    string
		wantErr bool
	}{
		{
			name:   "simple substitution",
			source: "case = {{.Case}}\ntasks = {{.Tasks}}\n",
			values: map[string]any{"Case": "c48_atm", "Tasks": 8},
			want:   "case = c48_atm\ntasks = 8\n",
		},
		{
			name:    "missing key is an error",
			source:  "case = {{.Case}}\n",
			values:  map[string]any{},
			wantErr: true,
		},
		{
			name:    "malformed template",
			source:  "case = {{.Case\n",
			values:  map[string]any{"Case": "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Render("test", tt.source, tt.values)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Render() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "namelist.tmpl")
	if err := os.WriteFile(tmplPath, []byte("&config\n  ntasks = {{.Tasks}}\n/\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(dir, "namelist.input")
	if err := WriteFile(tmplPath, outPath, map[string]any{"Tasks": 24}); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "ntasks = 24") {
		t.Errorf("rendered file = %q", data)
	}
}

func TestRenderFileMissing(t *testing.T) {
	t.Parallel()

	_, err := RenderFile(filepath.Join(t.TempDir(), "nope.tmpl"), nil)
	if err == nil {
		t.Fatal("RenderFile() succeeded for missing template")
	}
}

// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Job: {
	name:    string & !=""
	tasks?:  int & >=1
	backend: "local" | "remote"
}
`

type job struct {
	Name    string `json:"name"`
	Tasks   int    `json:"tasks,omitempty"`
	Backend string `json:"backend"`
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
		check   func(t *testing.T, got *job)
	}{
		{
			name: "valid document",
			input: `name: nightly
tasks: 4
backend: local
`,
			check: func(t *testing.T, got *job) {
				if got.Name != "nightly" || got.Tasks != 4 || got.Backend != "local" {
					t.Errorf("decoded = %+v", got)
				}
			},
		},
		{
			name: "optional field omitted",
			input: `name: nightly
backend: remote
`,
			check: func(t *testing.T, got *job) {
				if got.Tasks != 0 {
					t.Errorf("Tasks = %d, want zero value", got.Tasks)
				}
			},
		},
		{
			name: "missing required field",
			input: `name: nightly
`,
			wantErr: "backend",
		},
		{
			name: "disallowed value",
			input: `name: nightly
backend: cloud
`,
			wantErr: "backend",
		},
		{
			name: "constraint violation",
			input: `name: nightly
tasks: 0
backend: local
`,
			wantErr: "tasks",
		},
		{
			name: "unknown field rejected by closed definition",
			input: `name: nightly
backend: local
nodes: 2
`,
			wantErr: "nodes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := DecodeYAML[job](testSchema, []byte(tt.input), "#Job", WithFilename("job.yaml"))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("DecodeYAML() succeeded, want error")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not name the offending field %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeYAML() error: %v", err)
			}
			tt.check(t, result.Value)
		})
	}
}

func TestDecodeYAMLFileSizeLimit(t *testing.T) {
	t.Parallel()

	input := []byte("name: nightly\nbackend: local\n")
	_, err := DecodeYAML[job](testSchema, input, "#Job", WithMaxFileSize(4))
	if err == nil {
		t.Fatal("DecodeYAML() accepted input above the size limit")
	}
}

func TestDecodeYAMLBadSchemaPath(t *testing.T) {
	t.Parallel()

	_, err := DecodeYAML[job](testSchema, []byte("name: x\nbackend: local\n"), "#Missing")
	if err == nil {
		t.Fatal("DecodeYAML() succeeded with an unknown schema definition")
	}
}

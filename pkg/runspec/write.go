// SPDX-License-Identifier: MPL-2.0

package runspec

import (
	"github.com/appexec/appexec/internal/yamldoc"
)

// Write serializes the spec as YAML to the given path, truncating any
// existing file. Legacy multi/serial booleans are not emitted; the
// resolved mode is written instead.
func (s *RunSpec) Write(path FilesystemPath) error {
	out := *s
	out.Mode = s.ResolvedMode()
	out.Multi = nil
	out.Serial = nil
	return yamldoc.Write(string(path), &out)
}

// MarshalYAMLBytes returns the spec serialized as YAML, normalized the
// same way Write normalizes it.
func (s *RunSpec) MarshalYAMLBytes() ([]byte, error) {
	out := *s
	out.Mode = s.ResolvedMode()
	out.Multi = nil
	out.Serial = nil
	return yamldoc.Marshal(&out)
}

// SPDX-License-Identifier: MPL-2.0

package runspec

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/appexec/appexec/internal/cueutil"
	"github.com/appexec/appexec/internal/yamldoc"
)

//go:embed runspec_schema.cue
var runspecSchema string

// Parse reads and parses a run specification from the given path.
// !ENV and !INC tags are resolved relative to the document's directory.
func Parse(path FilesystemPath) (*RunSpec, error) {
	pathStr := string(path)
	data, err := os.ReadFile(pathStr)
	if err != nil {
		return nil, fmt.Errorf("failed to read run spec at %s: %w", path, err)
	}
	return ParseBytes(data, pathStr)
}

// ParseBytes parses run specification content from bytes. The path is
// used for error messages and include resolution.
func ParseBytes(data []byte, path string) (*RunSpec, error) {
	resolved, err := yamldoc.Resolve(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	result, err := cueutil.DecodeYAML[RunSpec](
		runspecSchema,
		resolved,
		"#RunSpec",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	spec := result.Value
	spec.FilePath = FilesystemPath(path)

	if errs := spec.Validate(); len(errs) > 0 {
		return nil, errs
	}

	return spec, nil
}

// ParseConcat loads several YAML documents in order, merging top-level
// keys with later documents winning, then validates the merged result.
// This mirrors layered run configurations (a site-wide base spec plus a
// per-run override file).
func ParseConcat(paths ...FilesystemPath) (*RunSpec, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no run spec paths given")
	}
	strPaths := make([]string, 0, len(paths))
	for _, p := range paths {
		strPaths = append(strPaths, string(p))
	}
	merged, err := yamldoc.ReadConcat(false, strPaths...)
	if err != nil {
		return nil, err
	}

	last := strPaths[len(strPaths)-1]
	result, err := cueutil.DecodeYAML[RunSpec](
		runspecSchema,
		merged,
		"#RunSpec",
		cueutil.WithFilename(last),
	)
	if err != nil {
		return nil, err
	}

	spec := result.Value
	spec.FilePath = FilesystemPath(last)

	if errs := spec.Validate(); len(errs) > 0 {
		return nil, errs
	}

	return spec, nil
}

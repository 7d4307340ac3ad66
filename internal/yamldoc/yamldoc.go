// SPDX-License-Identifier: MPL-2.0

// Package yamldoc loads YAML documents with two extension tags:
//
//   - `!ENV NAME` replaces the node with the value of the environment
//     variable NAME; an unset variable is an error.
//   - `!INC path` replaces the node with the contents of another YAML
//     file, resolved relative to the including document.
//
// Includes may nest; a document cycle surfaces as an include-depth error.
// The package also supports ordered concatenation of multiple documents
// and writing values back out as YAML.
package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	envTag     = "!ENV"
	includeTag = "!INC"

	// maxIncludeDepth bounds nested !INC resolution; reaching it almost
	// always means an include cycle.
	maxIncludeDepth = 16
)

var (
	// ErrMissingEnvVar is returned when an !ENV tag names an unset
	// environment variable.
	ErrMissingEnvVar = errors.New("environment variable is not set")
	// ErrIncludeDepth is returned when !INC nesting exceeds maxIncludeDepth.
	ErrIncludeDepth = errors.New("include depth exceeded")
)

// Read loads the YAML document at path and resolves !ENV and !INC tags.
// Relative includes are resolved against the document's directory.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read yaml file %s: %w", path, err)
	}
	return Resolve(data, filepath.Dir(path))
}

// Resolve expands !ENV and !INC tags in data. Relative include paths are
// resolved against baseDir.
func Resolve(data []byte, baseDir string) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if root.Kind == 0 {
		// Empty document.
		return []byte{}, nil
	}
	if err := resolveNode(&root, baseDir, 0); err != nil {
		return nil, err
	}
	return marshalNode(&root)
}

// ReadConcat loads several YAML documents in order, resolves their tags,
// and merges their top-level mappings; keys from later documents win.
// When ignoreMissing is true, files that do not exist are skipped.
func ReadConcat(ignoreMissing bool, paths ...string) ([]byte, error) {
	merged := map[string]any{}
	for _, path := range paths {
		data, err := Read(path)
		if err != nil {
			if ignoreMissing && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		doc := map[string]any{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml file %s: %w", path, err)
		}
		for k, v := range doc {
			merged[k] = v
		}
	}
	return yaml.Marshal(merged)
}

// Decode resolves data (with baseDir for includes) and unmarshals the
// result into a generic mapping.
func Decode(data []byte, baseDir string) (map[string]any, error) {
	resolved, err := Resolve(data, baseDir)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(resolved, &out); err != nil {
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}
	return out, nil
}

// Write marshals v as YAML to path with 2-space indentation, truncating
// any existing file.
func Write(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write yaml file %s: %w", path, err)
	}
	return nil
}

// Marshal serializes v as YAML with 2-space indentation.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func marshalNode(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("failed to marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func resolveNode(node *yaml.Node, baseDir string, depth int) error {
	if depth > maxIncludeDepth {
		return fmt.Errorf("%w (limit %d); check for include cycles", ErrIncludeDepth, maxIncludeDepth)
	}

	switch node.Tag {
	case envTag:
		value, ok := os.LookupEnv(node.Value)
		if !ok {
			return fmt.Errorf("!ENV %s: %w", node.Value, ErrMissingEnvVar)
		}
		node.Value = value
		node.Tag = ""
		node.Style = 0
		return nil
	case includeTag:
		incPath := node.Value
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Join(baseDir, incPath)
		}
		data, err := os.ReadFile(incPath)
		if err != nil {
			return fmt.Errorf("!INC %s: %w", node.Value, err)
		}
		var incRoot yaml.Node
		if err := yaml.Unmarshal(data, &incRoot); err != nil {
			return fmt.Errorf("!INC %s: failed to parse yaml: %w", node.Value, err)
		}
		if incRoot.Kind != yaml.DocumentNode || len(incRoot.Content) == 0 {
			return fmt.Errorf("!INC %s: empty document", node.Value)
		}
		content := incRoot.Content[0]
		if err := resolveNode(content, filepath.Dir(incPath), depth+1); err != nil {
			return err
		}
		*node = *content
		return nil
	}

	for _, child := range node.Content {
		if err := resolveNode(child, baseDir, depth); err != nil {
			return err
		}
	}
	return nil
}

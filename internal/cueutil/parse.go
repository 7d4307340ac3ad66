// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// DecodeResult contains the result of a successful decode operation.
type DecodeResult[T any] struct {
	// Value is the decoded Go struct.
	Value *T

	// Unified is the unified CUE value, available for advanced use cases
	// such as extracting additional metadata.
	Unified cue.Value
}

// DecodeYAML performs the 3-step validation flow for YAML documents:
//
//  1. Compile the embedded schema
//  2. Extract the YAML document into CUE and unify with the schema
//  3. Validate and decode to a Go struct
//
// Parameters:
//   - schema: the embedded CUE schema source (from //go:embed)
//   - data: the user-provided YAML document bytes
//   - schemaPath: the path to the root definition (e.g. "#RunSpec")
//   - opts: optional configuration
//
// Returns a DecodeResult with the decoded struct and unified CUE value,
// or an error carrying the CUE path of the offending field.
func DecodeYAML[T any](schema string, data []byte, schemaPath string, opts ...Option) (*DecodeResult[T], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	// Step 1: compile the schema.
	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	// Step 2: extract the YAML document and unify with the schema.
	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return nil, FormatError(err, filename)
	}
	userValue := ctx.BuildFile(file)
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}
	unified := schemaRoot.Unify(userValue)

	// Step 3: validate and decode.
	if options.concrete {
		err = unified.Validate(cue.Concrete(true))
	} else {
		err = unified.Validate()
	}
	if err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &DecodeResult[T]{
		Value:   &result,
		Unified: unified,
	}, nil
}

// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE validation utilities for YAML inputs.
//
// The package implements the 3-step flow used by run spec parsing:
//
//  1. Compile the embedded schema
//  2. Extract the user's YAML document into CUE and unify with the schema
//  3. Validate and decode to a Go struct
//
// # Usage
//
//	//go:embed runspec_schema.cue
//	var schema string
//
//	result, err := cueutil.DecodeYAML[RunSpec](
//	    schema,
//	    yamlBytes,
//	    "#RunSpec",
//	    cueutil.WithFilename("run.yaml"),
//	)
//	if err != nil {
//	    return nil, err // error includes the CUE path of the bad field
//	}
//	return result.Value, nil
package cueutil

// SPDX-License-Identifier: MPL-2.0

// Package runspec defines the schema and parsing for appexec run
// specification files.
//
// A run specification is a YAML document that describes a single
// executable invocation: the binary to launch, the working directory for
// the run, the execution mode (serial or multi-task), optional scheduler
// and launcher settings, standard input lines, and the destinations for
// captured standard output and error.
//
// Documents are parsed with gopkg.in/yaml.v3 (after !ENV and !INC tag
// resolution, see internal/yamldoc) and validated against the embedded
// CUE schema in runspec_schema.cue before semantic validation runs.
package runspec

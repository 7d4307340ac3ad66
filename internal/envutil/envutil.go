// SPDX-License-Identifier: MPL-2.0

// Package envutil reads environment variables with type coercion.
// Values that look like booleans, integers, or floats are returned as
// such; everything else stays a string.
package envutil

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrNotBoolean is returned by StrToBool for strings that are neither
// true-like nor false-like.
var ErrNotBoolean = errors.New("string is not a boolean value")

// Get returns the value of the environment variable with its type
// coerced: "true"/"false" (any case) become bool, integer literals
// become int, float literals become float64, anything else stays a
// string. The second return reports whether the variable is set.
func Get(name string) (any, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return nil, false
	}
	return Coerce(raw), true
}

// GetInt returns the environment variable parsed as an integer.
// Unset or non-integer values return (0, false).
func GetInt(name string) (int, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Set sets the environment variable, formatting non-string values with
// their default representation.
func Set(name string, value any) error {
	return os.Setenv(name, fmt.Sprintf("%v", value))
}

// Coerce converts a raw string to bool, int, or float64 when the literal
// allows it, otherwise returns the string unchanged.
func Coerce(raw string) any {
	trimmed := strings.TrimSpace(raw)
	// Only the literal words coerce to bool; "1"/"0" stay numeric.
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return raw
}

// StrToBool converts true-like ("true", "yes", "on", "1") and false-like
// ("false", "no", "off", "0") strings, case-insensitively, to booleans.
// Anything else returns ErrNotBoolean.
func StrToBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrNotBoolean, s)
	}
}

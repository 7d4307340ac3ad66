// SPDX-License-Identifier: MPL-2.0

// Package timeutil converts between strftime-style date strings, the
// format convention used by run specifications and log naming, and Go
// time layouts.
package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// GlobalFormat is the canonical timestamp format used across appexec
// artifacts (e.g. 20260823T000000 without the separator letters).
const GlobalFormat = "%Y%m%d%H%M%S"

// ErrUnknownToken is returned when a format string contains an
// unsupported % token.
var ErrUnknownToken = errors.New("unknown format token")

// tokenLayouts maps strftime tokens to Go reference-time layout
// fragments.
var tokenLayouts = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'M': "04",
	'S': "05",
	'j': "002",
	'%': "%",
}

// Layout converts a strftime-style format string to a Go time layout.
func Layout(frmt string) (string, error) {
	var out strings.Builder
	for i := 0; i < len(frmt); i++ {
		c := frmt[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		if i+1 >= len(frmt) {
			return "", fmt.Errorf("%w: trailing %% in %q", ErrUnknownToken, frmt)
		}
		i++
		layout, ok := tokenLayouts[frmt[i]]
		if !ok {
			return "", fmt.Errorf("%w: %%%c in %q", ErrUnknownToken, frmt[i], frmt)
		}
		out.WriteString(layout)
	}
	return out.String(), nil
}

// Convert re-renders datestr, expressed in the strftime-style format
// infrmt, using outfrmt.
func Convert(datestr, infrmt, outfrmt string) (string, error) {
	t, err := ParseDate(datestr, infrmt)
	if err != nil {
		return "", err
	}
	outLayout, err := Layout(outfrmt)
	if err != nil {
		return "", err
	}
	return t.Format(outLayout), nil
}

// ParseDate parses datestr according to the strftime-style format frmt.
func ParseDate(datestr, frmt string) (time.Time, error) {
	layout, err := Layout(frmt)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(layout, datestr)
	if err != nil {
		return time.Time{}, fmt.Errorf("date string %q does not match format %q: %w", datestr, frmt, err)
	}
	return t, nil
}

// Check reports whether datestr matches the strftime-style format frmt.
func Check(datestr, frmt string) bool {
	_, err := ParseDate(datestr, frmt)
	return err == nil
}

// Now renders the current time, in UTC, with the strftime-style format
// frmt.
func Now(frmt string) (string, error) {
	layout, err := Layout(frmt)
	if err != nil {
		return "", err
	}
	return time.Now().UTC().Format(layout), nil
}

// SPDX-License-Identifier: MPL-2.0

package timeutil

import (
	"errors"
	"testing"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		frmt    string
		want    string
		wantErr bool
	}{
		{name: "global format", frmt: GlobalFormat, want: "20060102150405"},
		{name: "dashed date", frmt: "%Y-%m-%d", want: "2006-01-02"},
		{name: "time with colons", frmt: "%H:%M:%S", want: "15:04:05"},
		{name: "two digit year", frmt: "%y%j", want: "06002"},
		{name: "escaped percent", frmt: "%%Y", want: "%Y"},
		{name: "literal text passes through", frmt: "run.%Y%m%d.log", want: "run.20060102.log"},
		{name: "unknown token", frmt: "%Q", wantErr: true},
		{name: "trailing percent", frmt: "%Y%", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Layout(tt.frmt)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Layout(%q) succeeded, want error", tt.frmt)
				}
				if !errors.Is(err, ErrUnknownToken) {
					t.Errorf("error does not wrap ErrUnknownToken: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Layout(%q) error: %v", tt.frmt, err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.frmt, got, tt.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		datestr string
		infrmt  string
		outfrmt string
		want    string
		wantErr bool
	}{
		{
			name:    "compact to dashed",
			datestr: "20260823120000",
			infrmt:  GlobalFormat,
			outfrmt: "%Y-%m-%d %H:%M:%S",
			want:    "2026-08-23 12:00:00",
		},
		{
			name:    "date to julian day",
			datestr: "2026-01-31",
			infrmt:  "%Y-%m-%d",
			outfrmt: "%j",
			want:    "031",
		},
		{
			name:    "mismatched input",
			datestr: "not-a-date",
			infrmt:  GlobalFormat,
			outfrmt: "%Y",
			wantErr: true,
		},
		{
			name:    "bad output format",
			datestr: "20260823120000",
			infrmt:  GlobalFormat,
			outfrmt: "%Q",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Convert(tt.datestr, tt.infrmt, tt.outfrmt)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Convert() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Convert() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Convert() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	if !Check("20260823000000", GlobalFormat) {
		t.Error("Check() rejected a matching date string")
	}
	if Check("2026-08-23", GlobalFormat) {
		t.Error("Check() accepted a mismatched date string")
	}
}

func TestNow(t *testing.T) {
	t.Parallel()

	got, err := Now(GlobalFormat)
	if err != nil {
		t.Fatalf("Now() error: %v", err)
	}
	if len(got) != len("20060102150405") {
		t.Errorf("Now() = %q, want a %d-character timestamp", got, len("20060102150405"))
	}
	if !Check(got, GlobalFormat) {
		t.Errorf("Now() = %q does not round-trip through its own format", got)
	}

	if _, err := Now("%Q"); err == nil {
		t.Error("Now() accepted an unknown token")
	}
}

// SPDX-License-Identifier: MPL-2.0

package gotest

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCoverMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    CoverMode
		wantErr bool
	}{
		{"set", CoverModeSet, false},
		{"count", CoverModeCount, false},
		{"atomic", CoverModeAtomic, false},
		{"", "", true},
		{"SET", "", true},
		{"boolean", "", true},
		{"atomic ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCoverMode(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCoverMode(%q) returned nil error, want error", tt.raw)
				}
				if !errors.Is(err, ErrInvalidCoverMode) {
					t.Errorf("error should wrap ErrInvalidCoverMode, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCoverMode(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseCoverMode(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestInvalidCoverModeError_NamesValueAndLegalSet(t *testing.T) {
	t.Parallel()

	_, err := ParseCoverMode("boolean")
	if err == nil {
		t.Fatal("ParseCoverMode returned nil error for unrecognized mode")
	}

	msg := err.Error()
	if !strings.Contains(msg, `"boolean"`) {
		t.Errorf("error message %q does not name the offending value", msg)
	}
	for _, legal := range []string{"set", "count", "atomic"} {
		if !strings.Contains(msg, legal) {
			t.Errorf("error message %q does not mention legal value %q", msg, legal)
		}
	}
}

func TestCoverMode_IsValid(t *testing.T) {
	t.Parallel()

	for _, mode := range CoverModes() {
		if valid, errs := mode.IsValid(); !valid || len(errs) > 0 {
			t.Errorf("CoverMode(%q).IsValid() = %v, %v; want true, none", mode, valid, errs)
		}
	}

	if valid, errs := CoverMode("profile").IsValid(); valid || len(errs) == 0 {
		t.Error("CoverMode(\"profile\").IsValid() accepted an unrecognized mode")
	}
}

func TestCoverMode_Describe(t *testing.T) {
	t.Parallel()

	for _, mode := range CoverModes() {
		if mode.Describe() == "unrecognized cover mode" {
			t.Errorf("CoverMode(%q).Describe() fell through to the unrecognized branch", mode)
		}
	}
	if CoverMode("bogus").Describe() != "unrecognized cover mode" {
		t.Error("Describe() on an unrecognized mode should say so")
	}
}

// SPDX-License-Identifier: MPL-2.0

package gotest

import (
	"path/filepath"
	"testing"
)

// The 2x2 truth table for the force-flag precedence, applied identically to
// each sanitizer.
func TestResolveSanitizers_TruthTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		force     bool
		perTarget bool
		want      bool
	}{
		{"force off target off", false, false, false},
		{"force off target on", false, true, true},
		{"force on target off", true, false, true},
		{"force on target on", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.ForceRace = tt.force
			opts.ForceMsan = tt.force
			opts.ForceAsan = tt.force
			s, err := NewSubsystem(opts)
			if err != nil {
				t.Fatalf("NewSubsystem returned error: %v", err)
			}

			got := s.ResolveSanitizers(PerTargetOverride{
				Race: tt.perTarget,
				Msan: tt.perTarget,
				Asan: tt.perTarget,
			})
			if got.Race != tt.want || got.Msan != tt.want || got.Asan != tt.want {
				t.Errorf("ResolveSanitizers() = %+v, want all %v", got, tt.want)
			}
		})
	}
}

func TestResolveSanitizers_CapabilitiesAreIndependent(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.ForceMsan = true
	s, err := NewSubsystem(opts)
	if err != nil {
		t.Fatalf("NewSubsystem returned error: %v", err)
	}

	got := s.ResolveSanitizers(PerTargetOverride{Race: true})
	if !got.Race {
		t.Error("per-target race declaration was ignored")
	}
	if !got.Msan {
		t.Error("global msan force flag was ignored")
	}
	if got.Asan {
		t.Error("asan enabled with neither force flag nor target declaration")
	}
}

func TestResolveEffective(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.CoverMode = "atomic"
	opts.ForceRace = true
	s, err := NewSubsystem(opts)
	if err != nil {
		t.Fatalf("NewSubsystem returned error: %v", err)
	}

	got := s.ResolveEffective(true, PerTargetOverride{Asan: true}, "dist", "example.com/foo/bar")

	if !got.CoverageEnabled {
		t.Error("CoverageEnabled = false, want true (coverage was requested)")
	}
	if got.CoverMode != CoverModeAtomic {
		t.Errorf("CoverMode = %q, want %q", got.CoverMode, CoverModeAtomic)
	}
	if !got.CoverageHTML {
		t.Error("CoverageHTML = false, want default true")
	}
	if want := filepath.FromSlash("dist/coverage/go/example.com_foo_bar"); got.CoverageOutputDir.String() != want {
		t.Errorf("CoverageOutputDir = %q, want %q", got.CoverageOutputDir, want)
	}
	if !got.Sanitizers.Race {
		t.Error("Sanitizers.Race = false, want true (forced globally)")
	}
	if got.Sanitizers.Msan {
		t.Error("Sanitizers.Msan = true, want false")
	}
	if !got.Sanitizers.Asan {
		t.Error("Sanitizers.Asan = false, want true (target declared it)")
	}
}

func TestResolveEffective_Pure(t *testing.T) {
	t.Parallel()

	s, err := NewSubsystem(DefaultOptions())
	if err != nil {
		t.Fatalf("NewSubsystem returned error: %v", err)
	}

	o := PerTargetOverride{Race: true}
	first := s.ResolveEffective(false, o, "dist", "net/http")
	second := s.ResolveEffective(false, o, "dist", "net/http")
	if first != second {
		t.Errorf("identical inputs produced different results: %+v vs %+v", first, second)
	}
}

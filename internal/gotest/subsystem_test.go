// SPDX-License-Identifier: MPL-2.0

package gotest

import (
	"errors"
	"path/filepath"
	"testing"

	"forge-cli/pkg/types"
)

func TestNewSubsystem_Defaults(t *testing.T) {
	t.Parallel()

	s, err := NewSubsystem(DefaultOptions())
	if err != nil {
		t.Fatalf("NewSubsystem(DefaultOptions()) returned error: %v", err)
	}

	if s.CoverMode() != CoverModeSet {
		t.Errorf("default cover mode = %q, want %q", s.CoverMode(), CoverModeSet)
	}
	if !s.CoverageHTML() {
		t.Error("expected coverage HTML to be enabled by default")
	}
	if s.Skip() {
		t.Error("expected skip to be false by default")
	}
	if s.ForceRace() || s.ForceMsan() || s.ForceAsan() {
		t.Error("expected all force flags to be false by default")
	}
	if len(s.CoverageIncludePatterns()) != 0 {
		t.Errorf("expected default include patterns to be empty, got %v", s.CoverageIncludePatterns())
	}
	if len(s.Args()) != 0 {
		t.Errorf("expected default args to be empty, got %v", s.Args())
	}
	if s.CoverageOutputDirTemplate() != DefaultCoverageOutputDir {
		t.Errorf("default output dir template = %q, want %q", s.CoverageOutputDirTemplate(), DefaultCoverageOutputDir)
	}
}

func TestNewSubsystem_InvalidCoverModeFailsFast(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.CoverMode = "boolean"

	s, err := NewSubsystem(opts)
	if err == nil {
		t.Fatal("NewSubsystem accepted an unrecognized cover mode")
	}
	if s != nil {
		t.Error("NewSubsystem published an instance alongside a validation error")
	}
	if !errors.Is(err, ErrInvalidCoverMode) {
		t.Errorf("error should wrap ErrInvalidCoverMode, got: %v", err)
	}
}

func TestNewSubsystem_EmptyOutputDirFallsBackToDefault(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.CoverageOutputDir = ""

	s, err := NewSubsystem(opts)
	if err != nil {
		t.Fatalf("NewSubsystem returned error: %v", err)
	}
	if s.CoverageOutputDirTemplate() != DefaultCoverageOutputDir {
		t.Errorf("output dir template = %q, want default %q", s.CoverageOutputDirTemplate(), DefaultCoverageOutputDir)
	}
}

func TestNewSubsystem_ClonesInputSlices(t *testing.T) {
	t.Parallel()

	args := []string{"-run", "TestFoo"}
	patterns := []string{"example.com/..."}

	opts := DefaultOptions()
	opts.Args = args
	opts.CoverageIncludePatterns = patterns

	s, err := NewSubsystem(opts)
	if err != nil {
		t.Fatalf("NewSubsystem returned error: %v", err)
	}

	args[0] = "mutated"
	patterns[0] = "mutated"

	if got := s.Args(); got[0] != "-run" {
		t.Errorf("caller mutation leaked into subsystem args: %v", got)
	}
	if got := s.CoverageIncludePatterns(); got[0] != "example.com/..." {
		t.Errorf("caller mutation leaked into include patterns: %v", got)
	}

	// Accessors return copies too.
	s.Args()[0] = "mutated"
	if got := s.Args(); got[0] != "-run" {
		t.Errorf("accessor exposed internal args slice: %v", got)
	}
}

func TestSubsystem_CoverageOutputDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		template   string
		distdir    types.FilesystemPath
		importPath types.ImportPath
		want       string
	}{
		{
			name:       "default template",
			template:   DefaultCoverageOutputDir,
			distdir:    "dist",
			importPath: "example.com/foo/bar",
			want:       filepath.FromSlash("dist/coverage/go/example.com_foo_bar"),
		},
		{
			name:       "import path without slashes is unchanged",
			template:   DefaultCoverageOutputDir,
			distdir:    "dist",
			importPath: "main",
			want:       filepath.FromSlash("dist/coverage/go/main"),
		},
		{
			name:       "unmatched token passes through",
			template:   "{distdir}/{unknown}",
			distdir:    "d",
			importPath: "main",
			want:       filepath.FromSlash("d/{unknown}"),
		},
		{
			name:       "template ignoring import path",
			template:   "{distdir}/cov",
			distdir:    "out",
			importPath: "example.com/foo",
			want:       filepath.FromSlash("out/cov"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.CoverageOutputDir = tt.template
			s, err := NewSubsystem(opts)
			if err != nil {
				t.Fatalf("NewSubsystem returned error: %v", err)
			}

			got := s.CoverageOutputDir(tt.distdir, tt.importPath)
			if got.String() != tt.want {
				t.Errorf("CoverageOutputDir(%q, %q) = %q, want %q", tt.distdir, tt.importPath, got, tt.want)
			}
		})
	}
}

func TestSubsystem_CoverageOutputDirIsDeterministic(t *testing.T) {
	t.Parallel()

	s, err := NewSubsystem(DefaultOptions())
	if err != nil {
		t.Fatalf("NewSubsystem returned error: %v", err)
	}

	first := s.CoverageOutputDir("dist", "example.com/foo/bar")
	for range 10 {
		if got := s.CoverageOutputDir("dist", "example.com/foo/bar"); got != first {
			t.Fatalf("repeated resolution diverged: %q vs %q", got, first)
		}
	}
}

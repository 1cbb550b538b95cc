// SPDX-License-Identifier: MPL-2.0

package gotest

import (
	"fmt"
	"slices"

	"forge-cli/pkg/fspath"
	"forge-cli/pkg/pathtpl"
	"forge-cli/pkg/types"
)

// DefaultCoverageOutputDir is the default coverage output path template.
// {distdir} is replaced with the forge dist directory, and
// {import_path_escaped} is replaced with the package's import path with
// slashes converted to underscores. The expanded path is relative to the
// build root.
const DefaultCoverageOutputDir = "{distdir}/coverage/go/{import_path_escaped}"

type (
	// Options carries the raw, type-coerced option values for the go-test
	// subsystem as supplied by the option-loading layer. Values are not yet
	// semantically validated; NewSubsystem performs that once.
	Options struct {
		// Args are passed through to the test binary in order, after
		// Go-style flag translation by the execution component
		// (e.g. `-v` becomes `-test.v`).
		Args []string
		// CoverMode selects the coverage instrumentation granularity.
		// Must be one of "set", "count", "atomic".
		CoverMode string
		// CoverageOutputDir is the path template for coverage reports,
		// relative to the build root.
		CoverageOutputDir string
		// CoverageHTML requests conversion of coverage reports to HTML,
		// written next to the raw coverage data.
		CoverageHTML bool
		// CoverageIncludePatterns lists the import path patterns that will
		// be instrumented for coverage. Empty means all packages are
		// eligible. Patterns follow `go help packages` wildcard semantics.
		CoverageIncludePatterns []string
		// Skip omits Go tests from test runs entirely.
		Skip bool
		// ForceRace always enables the Go data race detector, regardless of
		// the per-target race field.
		ForceRace bool
		// ForceMsan always enables C/C++ memory sanitizer interoperation,
		// regardless of the per-target msan field.
		ForceMsan bool
		// ForceAsan always enables C/C++ address sanitizer interoperation,
		// regardless of the per-target asan field.
		ForceAsan bool
	}

	// Subsystem is the resolved, immutable go-test configuration for one
	// build invocation. Construct it with NewSubsystem; there are no
	// setters, so concurrent reads need no locking.
	Subsystem struct {
		args                    []string
		coverMode               CoverMode
		coverageOutputDir       string
		coverageHTML            bool
		coverageIncludePatterns []string
		skip                    bool
		forceRace               bool
		forceMsan               bool
		forceAsan               bool
	}
)

// DefaultOptions returns the option values used when nothing is overridden:
// cover mode "set", the standard output dir template, HTML conversion on,
// and everything else off or empty.
func DefaultOptions() Options {
	return Options{
		Args:                    []string{},
		CoverMode:               string(CoverModeSet),
		CoverageOutputDir:       DefaultCoverageOutputDir,
		CoverageHTML:            true,
		CoverageIncludePatterns: []string{},
		Skip:                    false,
		ForceRace:               false,
		ForceMsan:               false,
		ForceAsan:               false,
	}
}

// NewSubsystem validates opts and constructs the immutable subsystem
// configuration. Validation fails fast: an unrecognized cover mode aborts
// construction and no Subsystem is published. Input slices are cloned so
// later mutation by the caller cannot leak into the published instance.
func NewSubsystem(opts Options) (*Subsystem, error) {
	mode, err := ParseCoverMode(opts.CoverMode)
	if err != nil {
		return nil, fmt.Errorf("go-test options: %w", err)
	}

	outputDir := opts.CoverageOutputDir
	if outputDir == "" {
		outputDir = DefaultCoverageOutputDir
	}

	return &Subsystem{
		args:                    slices.Clone(opts.Args),
		coverMode:               mode,
		coverageOutputDir:       outputDir,
		coverageHTML:            opts.CoverageHTML,
		coverageIncludePatterns: slices.Clone(opts.CoverageIncludePatterns),
		skip:                    opts.Skip,
		forceRace:               opts.ForceRace,
		forceMsan:               opts.ForceMsan,
		forceAsan:               opts.ForceAsan,
	}, nil
}

// Args returns the ordered pass-through arguments for the test binary.
// The returned slice is a copy.
func (s *Subsystem) Args() []string { return slices.Clone(s.args) }

// CoverMode returns the validated coverage instrumentation mode.
func (s *Subsystem) CoverMode() CoverMode { return s.coverMode }

// CoverageOutputDirTemplate returns the unexpanded coverage output path
// template.
func (s *Subsystem) CoverageOutputDirTemplate() string { return s.coverageOutputDir }

// CoverageHTML reports whether coverage reports should also be rendered to
// HTML by the execution component.
func (s *Subsystem) CoverageHTML() bool { return s.coverageHTML }

// CoverageIncludePatterns returns the import path patterns eligible for
// coverage instrumentation. Empty means all packages. The returned slice is
// a copy.
func (s *Subsystem) CoverageIncludePatterns() []string {
	return slices.Clone(s.coverageIncludePatterns)
}

// Skip reports whether Go tests are skipped entirely for this invocation.
func (s *Subsystem) Skip() bool { return s.skip }

// ForceRace reports whether the race detector is force-enabled globally.
func (s *Subsystem) ForceRace() bool { return s.forceRace }

// ForceMsan reports whether the memory sanitizer is force-enabled globally.
func (s *Subsystem) ForceMsan() bool { return s.forceMsan }

// ForceAsan reports whether the address sanitizer is force-enabled globally.
func (s *Subsystem) ForceAsan() bool { return s.forceAsan }

// CoverageOutputDir expands the coverage output path template for one
// package: {distdir} becomes distdir and {import_path_escaped} becomes the
// import path with slashes converted to underscores. The result is relative
// to the build root. No directory is created and no existence check is
// performed; that is the execution component's responsibility.
//
// Expansion is a pure single-pass substitution: tokens the template does
// not use are simply absent, and unmatched tokens pass through untouched.
func (s *Subsystem) CoverageOutputDir(distdir types.FilesystemPath, importPath types.ImportPath) types.FilesystemPath {
	expanded := pathtpl.Expand(s.coverageOutputDir, map[string]string{
		"distdir":             distdir.String(),
		"import_path_escaped": importPath.Escaped(),
	})
	return fspath.FromSlash(types.FilesystemPath(expanded))
}

// SPDX-License-Identifier: MPL-2.0

package gotest

import "forge-cli/pkg/types"

type (
	// PerTargetOverride carries a target's own sanitizer declarations, as
	// supplied by the build-graph collaborator. A target that declared no
	// opinion for a capability reports false for it.
	PerTargetOverride struct {
		// Race enables the Go data race detector for this target's tests.
		Race bool
		// Msan enables C/C++ memory sanitizer interoperation for this
		// target's tests.
		Msan bool
		// Asan enables C/C++ address sanitizer interoperation for this
		// target's tests.
		Asan bool
	}

	// SanitizerSettings holds the effective per-run sanitizer booleans after
	// global force flags have been applied.
	SanitizerSettings struct {
		Race bool
		Msan bool
		Asan bool
	}

	// EffectiveConfig is the fully-resolved configuration for one test
	// execution request. It is derived purely from the immutable Subsystem
	// plus per-request inputs and is never persisted.
	EffectiveConfig struct {
		Sanitizers SanitizerSettings
		// CoverageEnabled mirrors the externally supplied "coverage
		// requested" flag; the subsystem does not own it.
		CoverageEnabled bool
		CoverMode       CoverMode
		// CoverageOutputDir is the expanded output directory, relative to
		// the build root.
		CoverageOutputDir types.FilesystemPath
		CoverageHTML      bool
	}
)

// resolveForce is the single precedence policy for sanitizer capabilities:
// a global force flag always wins; otherwise the target's own declaration
// decides. Total function, no error case.
func resolveForce(force, perTarget bool) bool {
	if force {
		return true
	}
	return perTarget
}

// ResolveSanitizers applies the force-flag precedence independently to the
// race detector, memory sanitizer, and address sanitizer. The sanitizers
// are mutually exclusive at the binary level, but enforcing that exclusion
// belongs to the execution component, not here.
func (s *Subsystem) ResolveSanitizers(o PerTargetOverride) SanitizerSettings {
	return SanitizerSettings{
		Race: resolveForce(s.forceRace, o.Race),
		Msan: resolveForce(s.forceMsan, o.Msan),
		Asan: resolveForce(s.forceAsan, o.Asan),
	}
}

// ResolveEffective derives the complete per-request configuration. Same
// inputs always yield the same output; there is no hidden state and no
// caching (the derivation is cheap enough that memoization would add
// nothing).
func (s *Subsystem) ResolveEffective(coverageRequested bool, o PerTargetOverride, distdir types.FilesystemPath, importPath types.ImportPath) EffectiveConfig {
	return EffectiveConfig{
		Sanitizers:        s.ResolveSanitizers(o),
		CoverageEnabled:   coverageRequested,
		CoverMode:         s.coverMode,
		CoverageOutputDir: s.CoverageOutputDir(distdir, importPath),
		CoverageHTML:      s.coverageHTML,
	}
}

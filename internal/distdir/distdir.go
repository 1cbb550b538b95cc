// SPDX-License-Identifier: MPL-2.0

// Package distdir resolves the distribution directory, the root under which
// build outputs (including coverage reports) are written. The resolved
// directory is always expressed relative to the build root; other
// subsystems substitute it for the {distdir} token in their output path
// templates.
package distdir

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"forge-cli/pkg/fspath"
	"forge-cli/pkg/types"
)

const (
	// DefaultDir is the distribution directory used when no override is given.
	DefaultDir = "dist"

	separator = string(filepath.Separator)
)

// ErrOutsideBuildRoot is the sentinel error wrapped by OutsideBuildRootError.
var ErrOutsideBuildRoot = errors.New("dist directory outside build root")

type (
	// DistDir is the resolved distribution directory for one build
	// invocation. Immutable after Resolve.
	DistDir struct {
		relPath types.FilesystemPath
	}

	// OutsideBuildRootError is returned when the requested dist directory
	// does not live inside the build root. It wraps ErrOutsideBuildRoot for
	// errors.Is() compatibility.
	OutsideBuildRootError struct {
		Value     types.FilesystemPath
		BuildRoot types.FilesystemPath
	}
)

// Resolve validates dir against the build root and returns the dist
// directory as a build-root-relative path. An empty dir selects DefaultDir.
// Absolute paths are accepted only when they point inside the build root
// and are relativized; relative paths must not escape the build root.
func Resolve(buildRoot, dir types.FilesystemPath) (DistDir, error) {
	if dir == "" {
		dir = DefaultDir
	}

	rel := fspath.Clean(fspath.FromSlash(dir))
	if fspath.IsAbs(rel) {
		r, err := fspath.Rel(buildRoot, rel)
		if err != nil {
			return DistDir{}, &OutsideBuildRootError{Value: dir, BuildRoot: buildRoot}
		}
		rel = r
	}

	if rel == ".." || strings.HasPrefix(rel.String(), ".."+separator) {
		return DistDir{}, &OutsideBuildRootError{Value: dir, BuildRoot: buildRoot}
	}

	return DistDir{relPath: rel}, nil
}

// RelPath returns the dist directory relative to the build root.
func (d DistDir) RelPath() types.FilesystemPath { return d.relPath }

// String returns the build-root-relative path as a string, for use as a
// template substitution value.
func (d DistDir) String() string { return d.relPath.String() }

// Error implements the error interface for OutsideBuildRootError.
func (e *OutsideBuildRootError) Error() string {
	return fmt.Sprintf("dist directory %q must be inside the build root %q", e.Value, e.BuildRoot)
}

// Unwrap returns ErrOutsideBuildRoot for errors.Is() compatibility.
func (e *OutsideBuildRootError) Unwrap() error { return ErrOutsideBuildRoot }

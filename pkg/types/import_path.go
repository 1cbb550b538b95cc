// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidImportPath is the sentinel error wrapped by InvalidImportPathError.
var ErrInvalidImportPath = errors.New("invalid import path")

type (
	// ImportPath represents a Go package import path, the hierarchical
	// package identifier used as a namespace key (e.g. "example.com/foo/bar").
	// A valid import path must be non-empty, not whitespace-only, and must
	// not contain whitespace.
	ImportPath string

	// InvalidImportPathError is returned when an ImportPath value is empty,
	// whitespace-only, or contains whitespace.
	InvalidImportPathError struct {
		Value ImportPath
	}
)

// String returns the string representation of the ImportPath.
func (p ImportPath) String() string { return string(p) }

// Escaped returns the import path with every "/" replaced by "_", making it
// usable as a single filesystem path segment. An import path with zero
// slashes is returned unchanged.
//
// The escaping is lossy: a literal underscore in the import path is
// indistinguishable from an escaped slash in the result. That collision is
// accepted; coverage output directories for such paths may coincide.
func (p ImportPath) Escaped() string {
	return strings.ReplaceAll(string(p), "/", "_")
}

// IsValid returns whether the ImportPath is valid.
// A valid import path must be non-empty and contain no whitespace.
func (p ImportPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidImportPathError{Value: p}}
	}
	if strings.ContainsAny(string(p), " \t\n\r") {
		return false, []error{&InvalidImportPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidImportPathError.
func (e *InvalidImportPathError) Error() string {
	return fmt.Sprintf("invalid import path %q: must be non-empty and contain no whitespace", e.Value)
}

// Unwrap returns ErrInvalidImportPath for errors.Is() compatibility.
func (e *InvalidImportPathError) Unwrap() error { return ErrInvalidImportPath }

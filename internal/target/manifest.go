// SPDX-License-Identifier: MPL-2.0

// Package target loads per-target metadata from forge.toml manifests. A
// manifest sits next to the package it describes and declares, among other
// things, the target's own sanitizer opt-ins for test runs. Absence of a
// field means the target has no opinion; the global go-test force flags can
// still enable the capability.
package target

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"forge-cli/internal/gotest"
	"forge-cli/pkg/fspath"
	"forge-cli/pkg/types"

	"github.com/pelletier/go-toml/v2"
)

// ManifestName is the file name of a target manifest.
const ManifestName = "forge.toml"

// ErrManifestParse is the sentinel error wrapped by ManifestParseError.
var ErrManifestParse = errors.New("manifest parse failure")

type (
	// Manifest is the decoded contents of one forge.toml file.
	Manifest struct {
		// Test carries the target's test-run declarations.
		Test TestSettings `toml:"test"`
	}

	// TestSettings holds a target's optional test-run fields. Pointer
	// fields distinguish "declared false" from "not declared"; both resolve
	// the same way, but strict decoding keeps typos loud.
	TestSettings struct {
		// Race enables the Go data race detector for this target's tests.
		Race *bool `toml:"race"`
		// Msan enables C/C++ memory sanitizer interoperation.
		Msan *bool `toml:"msan"`
		// Asan enables C/C++ address sanitizer interoperation.
		Asan *bool `toml:"asan"`
	}

	// ManifestParseError is returned when a forge.toml file cannot be
	// decoded. It wraps ErrManifestParse for errors.Is() compatibility and
	// carries the underlying decode error.
	ManifestParseError struct {
		Path types.FilesystemPath
		Err  error
	}
)

// Override collapses the optional fields into the per-target override the
// go-test subsystem resolves against: a missing field means no opinion,
// which carries the same weight as a declared false.
func (s TestSettings) Override() gotest.PerTargetOverride {
	return gotest.PerTargetOverride{
		Race: s.Race != nil && *s.Race,
		Msan: s.Msan != nil && *s.Msan,
		Asan: s.Asan != nil && *s.Asan,
	}
}

// Load reads and strictly decodes a manifest file. Unknown fields are
// rejected so a misspelled key fails loudly instead of being silently
// ignored.
func Load(path types.FilesystemPath) (*Manifest, error) {
	data, err := os.ReadFile(path.String())
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := unmarshalStrict(data, &m); err != nil {
		return nil, &ManifestParseError{Path: path, Err: err}
	}
	return &m, nil
}

// LoadDir loads the manifest in dir, if any. A directory without a
// forge.toml yields the zero manifest (no declarations) and no error.
func LoadDir(dir types.FilesystemPath) (*Manifest, error) {
	path := fspath.JoinStr(dir, ManifestName)
	if _, err := os.Stat(path.String()); os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	return Load(path)
}

func unmarshalStrict(data []byte, m *Manifest) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(m)
}

// Error implements the error interface for ManifestParseError.
func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrManifestParse for errors.Is() compatibility.
func (e *ManifestParseError) Unwrap() error { return ErrManifestParse }

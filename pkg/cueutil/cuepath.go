// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCUEPath is the sentinel error for invalid CUE paths.
var ErrInvalidCUEPath = errors.New("invalid CUE path")

// CUEPath is a JSON-path style reference to a value inside a CUE document,
// e.g. "gotest.cover_mode" or "args[0]".
type CUEPath string

// Validate checks that the path is non-empty.
func (p CUEPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return fmt.Errorf("%w: path must not be empty", ErrInvalidCUEPath)
	}
	return nil
}

// String returns the path as a plain string.
func (p CUEPath) String() string {
	return string(p)
}

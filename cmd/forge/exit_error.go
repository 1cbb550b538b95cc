// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"forge-cli/pkg/types"
)

// Exit codes for the distinct CLI failure classes. Anything else exits 1.
const (
	// ExitCodeConfig covers configuration load and validation failures,
	// including an invalid cover mode.
	ExitCodeConfig types.ExitCode = 2
	// ExitCodeManifest covers forge.toml manifests that fail to decode.
	ExitCodeManifest types.ExitCode = 3
	// ExitCodeDistDir covers a dist directory escaping the build root.
	ExitCodeDistDir types.ExitCode = 4
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

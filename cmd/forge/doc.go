// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for forge.
//
// The package is the CLI layer only: Cobra handlers parse flags, delegate to
// the services wired into App, and render the results. Resolution logic for
// test configuration lives in internal/gotest; this package never reimplements
// it.
package cmd

// SPDX-License-Identifier: MPL-2.0

// Package gotest resolves the effective test-execution configuration for Go
// test runs: which flags pass through to the test binary, whether coverage
// instrumentation is active and in what mode, where coverage artifacts are
// written, and whether sanitizers are force-enabled globally or left to
// per-target declarations.
//
// The Subsystem is constructed exactly once per build invocation from raw
// option values and is immutable afterward, so it may be read concurrently
// by any number of test-execution workers without synchronization. All
// resolution operations are pure derivations over that immutable state.
//
// This package does not execute tests, read the filesystem, or parse
// coverage data; it only produces fully-resolved configuration values that
// the execution component consumes.
package gotest

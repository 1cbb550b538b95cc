// SPDX-License-Identifier: MPL-2.0

package gotest

import (
	"errors"
	"fmt"
)

const (
	// CoverModeSet records, per statement, a bool: does this statement run?
	CoverModeSet CoverMode = "set"
	// CoverModeCount records, per statement, an int: how many times does
	// this statement run?
	CoverModeCount CoverMode = "count"
	// CoverModeAtomic is like count, but correct in multithreaded tests;
	// significantly more expensive.
	CoverModeAtomic CoverMode = "atomic"
)

// ErrInvalidCoverMode is the sentinel error wrapped by InvalidCoverModeError.
var ErrInvalidCoverMode = errors.New("invalid cover mode")

type (
	// CoverMode is the coverage instrumentation granularity used when
	// running Go tests with coverage analysis enabled.
	CoverMode string

	// InvalidCoverModeError is returned when a CoverMode value is not one
	// of the recognized modes. It wraps ErrInvalidCoverMode for errors.Is()
	// compatibility.
	InvalidCoverModeError struct {
		Value string
	}
)

// CoverModes returns the closed set of recognized coverage modes, in
// documentation order.
func CoverModes() []CoverMode {
	return []CoverMode{CoverModeSet, CoverModeCount, CoverModeAtomic}
}

// ParseCoverMode validates a raw option value against the closed set of
// coverage modes. It is the single point of failure for unrecognized input:
// call it at configuration-load time so a bad value aborts construction
// instead of surfacing mid-run.
func ParseCoverMode(raw string) (CoverMode, error) {
	mode := CoverMode(raw)
	if valid, errs := mode.IsValid(); !valid {
		return "", errs[0]
	}
	return mode, nil
}

// String returns the string representation of the CoverMode.
func (m CoverMode) String() string { return string(m) }

// IsValid returns whether the CoverMode is one of the recognized modes,
// and a list of validation errors if it is not.
func (m CoverMode) IsValid() (bool, []error) {
	switch m {
	case CoverModeSet, CoverModeCount, CoverModeAtomic:
		return true, nil
	default:
		return false, []error{&InvalidCoverModeError{Value: string(m)}}
	}
}

// Describe returns a one-line human description of the mode's semantics.
func (m CoverMode) Describe() string {
	switch m {
	case CoverModeSet:
		return "bool: does this statement run?"
	case CoverModeCount:
		return "int: how many times does this statement run?"
	case CoverModeAtomic:
		return "int: count, but correct in multithreaded tests; significantly more expensive"
	default:
		return "unrecognized cover mode"
	}
}

// Error implements the error interface for InvalidCoverModeError.
func (e *InvalidCoverModeError) Error() string {
	return fmt.Sprintf("invalid cover mode %q (valid: set, count, atomic)", e.Value)
}

// Unwrap returns ErrInvalidCoverMode for errors.Is() compatibility.
func (e *InvalidCoverModeError) Unwrap() error { return ErrInvalidCoverMode }

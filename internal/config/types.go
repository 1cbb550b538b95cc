// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"forge-cli/internal/distdir"
	"forge-cli/internal/gotest"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidDistDir is returned when the dist_dir value is whitespace-only.
	ErrInvalidDistDir = errors.New("invalid dist dir")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidDistDirError is returned when the dist_dir value is non-empty
	// but whitespace-only. It wraps ErrInvalidDistDir for errors.Is().
	InvalidDistDirError struct {
		Value string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the forge configuration.
	Config struct {
		// DistDir is where build outputs (including coverage reports) are
		// written, relative to the build root. Empty means the default.
		DistDir string `json:"dist_dir" mapstructure:"dist_dir"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// GoTest carries the raw option values for the go-test subsystem.
		GoTest GoTestConfig `json:"gotest" mapstructure:"gotest"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// GoTestConfig holds the raw go-test option values as read from the
	// config file. Semantic validation (the cover mode enum) happens when
	// the values are handed to gotest.NewSubsystem.
	GoTestConfig struct {
		// Args are passed through to the test binary, in order. Known Go
		// test options are translated into the form expected by the test
		// binary by the execution component, e.g. `-v` becomes `-test.v`.
		Args []string `json:"args" mapstructure:"args"`
		// CoverMode selects the coverage instrumentation granularity
		// ("set", "count" or "atomic").
		CoverMode string `json:"cover_mode" mapstructure:"cover_mode"`
		// CoverageOutputDir is the coverage report path template. Must be
		// relative to the build root; {distdir} and {import_path_escaped}
		// are substituted at resolution time.
		CoverageOutputDir string `json:"coverage_output_dir" mapstructure:"coverage_output_dir"`
		// CoverageHTML also renders coverage reports to HTML.
		CoverageHTML bool `json:"coverage_html" mapstructure:"coverage_html"`
		// CoverageIncludePatterns lists import path patterns eligible for
		// coverage instrumentation (see `go help packages`). Empty = all.
		CoverageIncludePatterns []string `json:"coverage_include_patterns" mapstructure:"coverage_include_patterns"`
		// Skip omits Go tests entirely.
		Skip bool `json:"skip" mapstructure:"skip"`
		// ForceRace always enables the Go data race detector.
		ForceRace bool `json:"force_race" mapstructure:"force_race"`
		// ForceMsan always enables memory sanitizer interoperation.
		ForceMsan bool `json:"force_msan" mapstructure:"force_msan"`
		// ForceAsan always enables address sanitizer interoperation.
		ForceAsan bool `json:"force_asan" mapstructure:"force_asan"`
	}
)

// Options converts the raw config section into the option set consumed by
// gotest.NewSubsystem.
func (c GoTestConfig) Options() gotest.Options {
	return gotest.Options{
		Args:                    c.Args,
		CoverMode:               c.CoverMode,
		CoverageOutputDir:       c.CoverageOutputDir,
		CoverageHTML:            c.CoverageHTML,
		CoverageIncludePatterns: c.CoverageIncludePatterns,
		Skip:                    c.Skip,
		ForceRace:               c.ForceRace,
		ForceMsan:               c.ForceMsan,
		ForceAsan:               c.ForceAsan,
	}
}

// IsValid returns whether the GoTestConfig has valid fields. It delegates
// cover mode validation to the gotest enum; bool and list fields need no
// validation.
func (c GoTestConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := gotest.CoverMode(c.CoverMode).IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// IsValid returns whether the Config has valid fields. It delegates to
// UI.IsValid() and GoTest.IsValid(), and checks that DistDir, when set, is
// not whitespace-only.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if c.DistDir != "" && strings.TrimSpace(c.DistDir) == "" {
		errs = append(errs, &InvalidDistDirError{Value: c.DistDir})
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.GoTest.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidDistDirError.
func (e *InvalidDistDirError) Error() string {
	return fmt.Sprintf("invalid dist dir %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidDistDir for errors.Is() compatibility.
func (e *InvalidDistDirError) Unwrap() error { return ErrInvalidDistDir }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration. The go-test section
// mirrors gotest.DefaultOptions so that a config file that sets nothing
// behaves exactly like the subsystem defaults.
func DefaultConfig() *Config {
	opts := gotest.DefaultOptions()
	return &Config{
		DistDir: distdir.DefaultDir,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		GoTest: GoTestConfig{
			Args:                    opts.Args,
			CoverMode:               opts.CoverMode,
			CoverageOutputDir:       opts.CoverageOutputDir,
			CoverageHTML:            opts.CoverageHTML,
			CoverageIncludePatterns: opts.CoverageIncludePatterns,
			Skip:                    opts.Skip,
			ForceRace:               opts.ForceRace,
			ForceMsan:               opts.ForceMsan,
			ForceAsan:               opts.ForceAsan,
		},
	}
}

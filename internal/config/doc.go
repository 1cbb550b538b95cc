// SPDX-License-Identifier: MPL-2.0

// Package config handles forge configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/forge/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/forge/config.cue on macOS, %APPDATA%\forge\config.cue
// on Windows). The package provides type-safe configuration access for the dist
// directory, UI settings, and the go-test subsystem option values.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to
// ensure type safety and provide clear error messages for invalid configurations.
// Constraints that CUE cannot express (or that must hold for values merged from
// defaults and overrides, such as the cover mode enum) are validated in Go after
// unmarshalling, so construction fails fast before any consumer observes a
// partially-valid configuration.
package config

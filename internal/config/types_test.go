// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"forge-cli/internal/gotest"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme  ColorScheme
		want    bool
		wantErr bool
	}{
		{ColorSchemeAuto, true, false},
		{ColorSchemeDark, true, false},
		{ColorSchemeLight, true, false},
		{"", false, true},
		{"invalid", false, true},
		{"DARK", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.scheme.IsValid()
			if isValid != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("ColorScheme(%q).IsValid() returned no errors, want error", tt.scheme)
				}
				if !errors.Is(errs[0], ErrInvalidColorScheme) {
					t.Errorf("error should wrap ErrInvalidColorScheme, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("ColorScheme(%q).IsValid() returned unexpected errors: %v", tt.scheme, errs)
			}
		})
	}
}

func TestGoTestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     GoTestConfig
		want    bool
		wantErr error
	}{
		{
			name: "defaults are valid",
			cfg:  DefaultConfig().GoTest,
			want: true,
		},
		{
			name: "all cover modes accepted",
			cfg:  GoTestConfig{CoverMode: "atomic"},
			want: true,
		},
		{
			name:    "unknown cover mode rejected",
			cfg:     GoTestConfig{CoverMode: "branch"},
			want:    false,
			wantErr: gotest.ErrInvalidCoverMode,
		},
		{
			name:    "empty cover mode rejected",
			cfg:     GoTestConfig{},
			want:    false,
			wantErr: gotest.ErrInvalidCoverMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.cfg.IsValid()
			if isValid != tt.want {
				t.Errorf("IsValid() = %v, want %v", isValid, tt.want)
			}
			if tt.wantErr != nil {
				if len(errs) == 0 {
					t.Fatal("IsValid() returned no errors, want error")
				}
				if !errors.Is(errs[0], tt.wantErr) {
					t.Errorf("error should wrap %v, got: %v", tt.wantErr, errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("IsValid() returned unexpected errors: %v", errs)
			}
		})
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if valid, errs := DefaultConfig().IsValid(); !valid {
			t.Errorf("DefaultConfig().IsValid() = false, errors: %v", errs)
		}
	})

	t.Run("whitespace dist dir rejected", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.DistDir = "   "
		valid, errs := cfg.IsValid()
		if valid {
			t.Fatal("IsValid() = true, want false")
		}
		if len(errs) != 1 {
			t.Fatalf("IsValid() returned %d errors, want 1 aggregate", len(errs))
		}
		if !errors.Is(errs[0], ErrInvalidConfig) {
			t.Errorf("error should wrap ErrInvalidConfig, got: %v", errs[0])
		}
		var aggErr *InvalidConfigError
		if !errors.As(errs[0], &aggErr) {
			t.Fatalf("error should be *InvalidConfigError, got: %T", errs[0])
		}
		if len(aggErr.FieldErrors) != 1 || !errors.Is(aggErr.FieldErrors[0], ErrInvalidDistDir) {
			t.Errorf("FieldErrors = %v, want one ErrInvalidDistDir", aggErr.FieldErrors)
		}
	})

	t.Run("field errors aggregate", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.UI.ColorScheme = "sepia"
		cfg.GoTest.CoverMode = "branch"
		valid, errs := cfg.IsValid()
		if valid {
			t.Fatal("IsValid() = true, want false")
		}
		var aggErr *InvalidConfigError
		if !errors.As(errs[0], &aggErr) {
			t.Fatalf("error should be *InvalidConfigError, got: %T", errs[0])
		}
		if len(aggErr.FieldErrors) != 2 {
			t.Errorf("FieldErrors count = %d, want 2", len(aggErr.FieldErrors))
		}
	})
}

func TestGoTestConfig_Options(t *testing.T) {
	t.Parallel()

	cfg := GoTestConfig{
		Args:                    []string{"-v"},
		CoverMode:               "set",
		CoverageOutputDir:       "{distdir}/cov/{import_path_escaped}",
		CoverageHTML:            true,
		CoverageIncludePatterns: []string{"./..."},
		Skip:                    true,
		ForceRace:               true,
		ForceMsan:               false,
		ForceAsan:               true,
	}

	opts := cfg.Options()

	if len(opts.Args) != 1 || opts.Args[0] != "-v" {
		t.Errorf("Options().Args = %v, want [-v]", opts.Args)
	}
	if opts.CoverMode != "set" {
		t.Errorf("Options().CoverMode = %q, want set", opts.CoverMode)
	}
	if opts.CoverageOutputDir != "{distdir}/cov/{import_path_escaped}" {
		t.Errorf("Options().CoverageOutputDir = %q", opts.CoverageOutputDir)
	}
	if !opts.CoverageHTML || !opts.Skip || !opts.ForceRace || opts.ForceMsan || !opts.ForceAsan {
		t.Error("Options() did not carry bool fields through unchanged")
	}
}

func TestDefaultConfig_RoundTripsThroughSubsystem(t *testing.T) {
	t.Parallel()

	sub, err := gotest.NewSubsystem(DefaultConfig().GoTest.Options())
	if err != nil {
		t.Fatalf("NewSubsystem() returned error: %v", err)
	}
	if sub.CoverMode() != gotest.CoverModeSet {
		t.Errorf("CoverMode() = %v, want set", sub.CoverMode())
	}
}

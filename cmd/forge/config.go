// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"forge-cli/internal/config"
	"forge-cli/internal/issue"
	"forge-cli/pkg/cueutil"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `forge config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage forge configuration",
		Long: `Manage forge configuration.

Configuration is stored in:
  - Linux: ~/.config/forge/config.cue
  - macOS: ~/Library/Application Support/forge/config.cue
  - Windows: %APPDATA%\forge\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value and write it back to the config file.

Keys: dist_dir, ui.verbose, ui.color_scheme, gotest.cover_mode,
gotest.coverage_output_dir, gotest.coverage_html, gotest.skip,
gotest.force_race, gotest.force_msan, gotest.force_asan.

gotest.cover_mode must be one of set (did each statement run), count (how
many times did it run) or atomic (like count, safe for parallel tests).
Run "forge test-config explain" for details.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}

			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		renderIssue(app, issue.ConfigLoadFailedId)
		return &ExitError{Code: ExitCodeConfig, Err: err}
	}

	keyStyle := KeyStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	// Derive config file path from the standard config directory since the
	// provider does not cache resolved paths.
	cfgDir, dirErr := config.ConfigDir()
	cfgPath := ""
	if dirErr == nil {
		cfgPath = filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	}
	if cfgPath != "" && fileExistsCheck(cfgPath) {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("dist_dir"), valueStyle.Render(cfg.DistDir))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(app.stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("gotest"))
	if len(cfg.GoTest.Args) == 0 {
		fmt.Fprintf(app.stdout, "  args: %s\n", SubtitleStyle.Render("(none)"))
	} else {
		fmt.Fprintf(app.stdout, "  args: %s\n", valueStyle.Render(strings.Join(cfg.GoTest.Args, " ")))
	}
	fmt.Fprintf(app.stdout, "  cover_mode: %s\n", valueStyle.Render(cfg.GoTest.CoverMode))
	fmt.Fprintf(app.stdout, "  coverage_output_dir: %s\n", valueStyle.Render(cfg.GoTest.CoverageOutputDir))
	fmt.Fprintf(app.stdout, "  coverage_html: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.GoTest.CoverageHTML)))
	if len(cfg.GoTest.CoverageIncludePatterns) == 0 {
		fmt.Fprintf(app.stdout, "  coverage_include_patterns: %s\n", SubtitleStyle.Render("(all packages)"))
	} else {
		for _, pattern := range cfg.GoTest.CoverageIncludePatterns {
			fmt.Fprintf(app.stdout, "  - %s\n", valueStyle.Render(pattern))
		}
	}
	fmt.Fprintf(app.stdout, "  skip: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.GoTest.Skip)))
	fmt.Fprintf(app.stdout, "  force_race: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.GoTest.ForceRace)))
	fmt.Fprintf(app.stdout, "  force_msan: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.GoTest.ForceMsan)))
	fmt.Fprintf(app.stdout, "  force_asan: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.GoTest.ForceAsan)))

	return nil
}

func initConfig(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n",
		SuccessStyle.Render("✓"),
		filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	return nil
}

func setConfigValue(ctx context.Context, app *App, rawKey, value string) error {
	// Keys address values inside the CUE config document.
	key := cueutil.CUEPath(rawKey)
	if err := key.Validate(); err != nil {
		return err
	}

	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	parseBool := func() (bool, error) {
		b, parseErr := strconv.ParseBool(value)
		if parseErr != nil {
			return false, fmt.Errorf("invalid boolean value %q for %s: use true or false", value, key)
		}
		return b, nil
	}

	switch key.String() {
	case "dist_dir":
		cfg.DistDir = value

	case "ui.verbose":
		if cfg.UI.Verbose, err = parseBool(); err != nil {
			return err
		}

	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)

	case "gotest.cover_mode":
		cfg.GoTest.CoverMode = value

	case "gotest.coverage_output_dir":
		cfg.GoTest.CoverageOutputDir = value

	case "gotest.coverage_html":
		if cfg.GoTest.CoverageHTML, err = parseBool(); err != nil {
			return err
		}

	case "gotest.skip":
		if cfg.GoTest.Skip, err = parseBool(); err != nil {
			return err
		}

	case "gotest.force_race":
		if cfg.GoTest.ForceRace, err = parseBool(); err != nil {
			return err
		}

	case "gotest.force_msan":
		if cfg.GoTest.ForceMsan, err = parseBool(); err != nil {
			return err
		}

	case "gotest.force_asan":
		if cfg.GoTest.ForceAsan, err = parseBool(); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: dist_dir, ui.verbose, ui.color_scheme, gotest.cover_mode, gotest.coverage_output_dir, gotest.coverage_html, gotest.skip, gotest.force_race, gotest.force_msan, gotest.force_asan", key)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return errs[0]
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

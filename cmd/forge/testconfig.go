// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"forge-cli/internal/config"
	"forge-cli/internal/distdir"
	"forge-cli/internal/gotest"
	"forge-cli/internal/issue"
	"forge-cli/internal/target"
	"forge-cli/pkg/types"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// newTestConfigCommand creates the `forge test-config` command tree. The
// subcommands expose the test configuration subsystem without running any
// tests: show prints the global layer, resolve derives the effective
// per-target settings, targets lists manifest declarations, and explain
// documents the coverage modes.
func newTestConfigCommand(app *App) *cobra.Command {
	tcCmd := &cobra.Command{
		Use:   "test-config",
		Short: "Inspect test run configuration",
		Long: `Inspect test run configuration.

Test runs are configured in three layers:
  1. Built-in defaults
  2. The user configuration file (gotest section)
  3. Per-target forge.toml manifests

'resolve' combines all three layers for one target and prints the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	tcCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show global test settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTestConfig(cmd.Context(), app)
		},
	})

	resolveCmd := &cobra.Command{
		Use:   "resolve <target-dir>",
		Short: "Resolve effective test settings for a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importPath, err := cmd.Flags().GetString("import-path")
			if err != nil {
				return err
			}
			coverage, err := cmd.Flags().GetBool("coverage")
			if err != nil {
				return err
			}
			return resolveTestConfig(cmd.Context(), app, args[0], importPath, coverage)
		},
	}
	resolveCmd.Flags().String("import-path", "", "import path of the target package (required)")
	resolveCmd.Flags().Bool("coverage", false, "resolve as if coverage collection was requested")
	_ = resolveCmd.MarkFlagRequired("import-path")
	tcCmd.AddCommand(resolveCmd)

	tcCmd.AddCommand(&cobra.Command{
		Use:   "targets [root-dir]",
		Short: "List targets that declare test settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return listTestTargets(app, root)
		},
	})

	tcCmd.AddCommand(&cobra.Command{
		Use:   "explain",
		Short: "Explain coverage instrumentation modes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return explainCoverModes(app)
		},
	})

	return tcCmd
}

// loadSubsystem builds the immutable subsystem from the loaded configuration.
// Construction fails fast on an invalid cover mode, so every command that
// goes through here reports bad configuration the same way: the matching
// issue card on stderr and a config exit code.
func loadSubsystem(ctx context.Context, app *App) (*gotest.Subsystem, *config.Config, error) {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		if errors.Is(err, gotest.ErrInvalidCoverMode) {
			renderIssue(app, issue.InvalidCoverModeId)
		}
		return nil, nil, &ExitError{Code: ExitCodeConfig, Err: err}
	}

	sub, err := gotest.NewSubsystem(cfg.GoTest.Options())
	if err != nil {
		if errors.Is(err, gotest.ErrInvalidCoverMode) {
			renderIssue(app, issue.InvalidCoverModeId)
		}
		return nil, nil, &ExitError{Code: ExitCodeConfig, Err: err}
	}

	return sub, cfg, nil
}

func showTestConfig(ctx context.Context, app *App) error {
	sub, _, err := loadSubsystem(ctx, app)
	if err != nil {
		return err
	}

	keyStyle := KeyStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Global Test Settings"))
	fmt.Fprintln(app.stdout)

	if args := sub.Args(); len(args) == 0 {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("args"), SubtitleStyle.Render("(none)"))
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("args"), valueStyle.Render(strings.Join(args, " ")))
	}
	fmt.Fprintf(app.stdout, "%s: %s %s\n", keyStyle.Render("cover_mode"),
		valueStyle.Render(sub.CoverMode().String()),
		SubtitleStyle.Render("("+sub.CoverMode().Describe()+")"))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("coverage_output_dir"), valueStyle.Render(sub.CoverageOutputDirTemplate()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("coverage_html"), valueStyle.Render(fmt.Sprintf("%v", sub.CoverageHTML())))
	if patterns := sub.CoverageIncludePatterns(); len(patterns) == 0 {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("coverage_include_patterns"), SubtitleStyle.Render("(all packages)"))
	} else {
		fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("coverage_include_patterns"))
		for _, pattern := range patterns {
			fmt.Fprintf(app.stdout, "  - %s\n", valueStyle.Render(pattern))
		}
	}
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("skip"), valueStyle.Render(fmt.Sprintf("%v", sub.Skip())))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("force_race"), valueStyle.Render(fmt.Sprintf("%v", sub.ForceRace())))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("force_msan"), valueStyle.Render(fmt.Sprintf("%v", sub.ForceMsan())))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("force_asan"), valueStyle.Render(fmt.Sprintf("%v", sub.ForceAsan())))

	return nil
}

func resolveTestConfig(ctx context.Context, app *App, targetDir, rawImportPath string, coverage bool) error {
	importPath := types.ImportPath(rawImportPath)
	if valid, errs := importPath.IsValid(); !valid {
		return errs[0]
	}

	sub, cfg, err := loadSubsystem(ctx, app)
	if err != nil {
		return err
	}

	if sub.Skip() {
		fmt.Fprintln(app.stdout, WarningStyle.Render("Tests are skipped (gotest.skip = true); nothing to resolve."))
		return nil
	}

	buildRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving build root: %w", err)
	}

	dd, err := distdir.Resolve(types.FilesystemPath(buildRoot), types.FilesystemPath(cfg.DistDir))
	if err != nil {
		if errors.Is(err, distdir.ErrOutsideBuildRoot) {
			renderIssue(app, issue.DistDirOutsideRootId)
			return &ExitError{Code: ExitCodeDistDir, Err: err}
		}
		return err
	}

	manifest, err := app.Targets.LoadDir(types.FilesystemPath(targetDir))
	if err != nil {
		if errors.Is(err, target.ErrManifestParse) {
			renderIssue(app, issue.ManifestParseErrorId)
			return &ExitError{Code: ExitCodeManifest, Err: err}
		}
		return err
	}

	effective := sub.ResolveEffective(coverage, manifest.Test.Override(), dd.RelPath(), importPath)

	keyStyle := KeyStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Effective Test Settings"))
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("target"), valueStyle.Render(targetDir))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("import_path"), valueStyle.Render(importPath.String()))
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("race"), valueStyle.Render(fmt.Sprintf("%v", effective.Sanitizers.Race)))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("msan"), valueStyle.Render(fmt.Sprintf("%v", effective.Sanitizers.Msan)))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("asan"), valueStyle.Render(fmt.Sprintf("%v", effective.Sanitizers.Asan)))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("coverage"), valueStyle.Render(fmt.Sprintf("%v", effective.CoverageEnabled)))
	if effective.CoverageEnabled {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("cover_mode"), valueStyle.Render(effective.CoverMode.String()))
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("coverage_output_dir"), valueStyle.Render(effective.CoverageOutputDir.String()))
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("coverage_html"), valueStyle.Render(fmt.Sprintf("%v", effective.CoverageHTML)))
	}

	return nil
}

func listTestTargets(app *App, root string) error {
	entries, err := app.Targets.Scan(types.FilesystemPath(root))
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("No forge.toml manifests found."))
		return nil
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Targets"))
	fmt.Fprintln(app.stdout)
	for _, entry := range entries {
		override := entry.Manifest.Test.Override()
		var declared []string
		if override.Race {
			declared = append(declared, "race")
		}
		if override.Msan {
			declared = append(declared, "msan")
		}
		if override.Asan {
			declared = append(declared, "asan")
		}
		if len(declared) == 0 {
			fmt.Fprintf(app.stdout, "%s  %s\n", KeyStyle.Render(entry.Dir.String()), SubtitleStyle.Render("(no sanitizers)"))
		} else {
			fmt.Fprintf(app.stdout, "%s  %s\n", KeyStyle.Render(entry.Dir.String()), SuccessStyle.Render(strings.Join(declared, ", ")))
		}
	}

	return nil
}

// explainCoverModes renders a markdown card documenting the closed set of
// coverage instrumentation modes.
func explainCoverModes(app *App) error {
	var sb strings.Builder
	sb.WriteString("# Coverage Instrumentation Modes\n\n")
	sb.WriteString("The cover mode controls what each statement's coverage counter records.\n\n")
	for _, mode := range gotest.CoverModes() {
		sb.WriteString(fmt.Sprintf("## %s\n\n%s\n\n", mode, mode.Describe()))
	}
	sb.WriteString("Select a mode with `forge config set gotest.cover_mode <mode>`.\n")

	rendered, err := glamour.Render(sb.String(), "dark")
	if err != nil {
		// Glamour failures degrade to plain markdown rather than hiding the help.
		fmt.Fprint(app.stdout, sb.String())
		return nil
	}

	fmt.Fprint(app.stdout, rendered)
	return nil
}

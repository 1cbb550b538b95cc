// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"forge-cli/internal/config"
	"forge-cli/internal/issue"
	"forge-cli/internal/target"
	"forge-cli/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer — all Cobra command handlers receive an App
	// reference and delegate business logic through its service interfaces.
	App struct {
		Config  ConfigProvider
		Targets TargetService
		stdout  io.Writer
		stderr  io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests can
	// supply mock implementations to isolate specific service behavior.
	Dependencies struct {
		Config  ConfigProvider
		Targets TargetService
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock
	// implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// TargetService resolves per-target manifests. LoadDir reads a single
	// directory's manifest (zero manifest when absent); Scan walks a tree
	// collecting every manifest under it.
	TargetService interface {
		LoadDir(dir types.FilesystemPath) (*target.Manifest, error)
		Scan(root types.FilesystemPath) ([]target.Entry, error)
	}

	// fsTargetService implements TargetService against the real filesystem.
	fsTargetService struct {
		scanner *target.Scanner
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Targets == nil {
		deps.Targets = &fsTargetService{scanner: target.NewScanner()}
	}

	return &App{
		Config:  deps.Config,
		Targets: deps.Targets,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}
}

// renderIssue prints the named issue card to stderr. The card supplements
// the error that still propagates to the caller; a rendering failure only
// drops the card, never the error.
func renderIssue(app *App, id issue.Id) {
	rendered, err := issue.Get(id).Render("dark")
	if err != nil {
		return
	}
	fmt.Fprint(app.stderr, rendered)
}

func (s *fsTargetService) LoadDir(dir types.FilesystemPath) (*target.Manifest, error) {
	return target.LoadDir(dir)
}

func (s *fsTargetService) Scan(root types.FilesystemPath) ([]target.Entry, error) {
	return s.scanner.Scan(root)
}

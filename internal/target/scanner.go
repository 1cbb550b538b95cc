// SPDX-License-Identifier: MPL-2.0

package target

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"forge-cli/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// Entry pairs a directory with its decoded manifest.
	Entry struct {
		Dir      types.FilesystemPath
		Manifest *Manifest
	}

	// Scanner walks a directory tree collecting target manifests.
	Scanner struct {
		logger *log.Logger
	}
)

// NewScanner creates a scanner that logs to stderr.
func NewScanner() *Scanner {
	return &Scanner{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "target",
		}),
	}
}

// Scan walks root and returns an entry for every directory containing a
// forge.toml. Hidden directories and directories starting with "_" are not
// descended into. A manifest that fails to decode is logged as a warning
// and skipped; the scan itself only fails on filesystem errors.
func (s *Scanner) Scan(root types.FilesystemPath) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(root.String(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root.String() && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != ManifestName {
			return nil
		}

		m, loadErr := Load(types.FilesystemPath(path))
		if loadErr != nil {
			s.logger.Warn("skipping unparsable manifest", "path", path, "err", loadErr)
			return nil
		}
		s.logger.Debug("found manifest", "path", path)
		entries = append(entries, Entry{
			Dir:      types.FilesystemPath(filepath.Dir(path)),
			Manifest: m,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan targets under %s: %w", root, err)
	}

	return entries, nil
}

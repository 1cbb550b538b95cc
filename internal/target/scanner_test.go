// SPDX-License-Identifier: MPL-2.0

package target

import (
	"os"
	"path/filepath"
	"testing"

	"forge-cli/pkg/types"
)

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mustMkdir := func(parts ...string) string {
		t.Helper()
		dir := filepath.Join(append([]string{root}, parts...)...)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
		return dir
	}

	pkgA := mustMkdir("pkg", "a")
	writeManifest(t, pkgA, "[test]\nrace = true\n")

	pkgB := mustMkdir("pkg", "b")
	writeManifest(t, pkgB, "[test]\nmsan = true\n")

	// Hidden and underscore directories are not descended into.
	hidden := mustMkdir(".git")
	writeManifest(t, hidden, "[test]\nrace = true\n")
	skipped := mustMkdir("_examples")
	writeManifest(t, skipped, "[test]\nrace = true\n")

	// Unparsable manifests are skipped, not fatal.
	broken := mustMkdir("pkg", "broken")
	writeManifest(t, broken, "[test]\nnot_a_field = true\n")

	entries, err := NewScanner().Scan(types.FilesystemPath(root))
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Scan() returned %d entries, want 2: %+v", len(entries), entries)
	}

	byDir := make(map[string]*Manifest, len(entries))
	for _, e := range entries {
		byDir[e.Dir.String()] = e.Manifest
	}

	if m, ok := byDir[pkgA]; !ok || m.Test.Race == nil || !*m.Test.Race {
		t.Errorf("missing or wrong entry for %s: %+v", pkgA, m)
	}
	if m, ok := byDir[pkgB]; !ok || m.Test.Msan == nil || !*m.Test.Msan {
		t.Errorf("missing or wrong entry for %s: %+v", pkgB, m)
	}
}

func TestScanner_ScanMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := NewScanner().Scan(types.FilesystemPath(filepath.Join(t.TempDir(), "missing")))
	if err == nil {
		t.Fatal("Scan() returned nil error for a missing root")
	}
}

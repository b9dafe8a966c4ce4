package testutil

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// WriteManifest writes a package.json document under dir, creating the
// directory if needed. Returns the manifest path.
func WriteManifest(t *testing.T, dir string, doc map[string]any) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "package.json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// NewRepo creates a temp monorepo: a root package.json built from root, and
// one package.json per entry in packages, keyed by repo-relative directory.
// Returns the repo root directory.
func NewRepo(t *testing.T, root map[string]any, packages map[string]map[string]any) string {
	t.Helper()
	rootDir := t.TempDir()
	WriteManifest(t, rootDir, root)
	for rel, doc := range packages {
		WriteManifest(t, filepath.Join(rootDir, filepath.FromSlash(rel)), doc)
	}
	return rootDir
}

// InitGitRepo turns dir into a git repository with everything committed.
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()
	run(t, dir, "git", "init", "-b", "main")
	run(t, dir, "git", "config", "user.email", "test@example.com")
	run(t, dir, "git", "config", "user.name", "Test")
	run(t, dir, "git", "add", ".")
	run(t, dir, "git", "commit", "-m", "initial commit")
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}

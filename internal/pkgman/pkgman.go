package pkgman

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Shakeskeyboarde/monox/internal/manifest"
)

// Manager identifies a JavaScript package manager.
type Manager string

const (
	NPM  Manager = "npm"
	PNPM Manager = "pnpm"
	Yarn Manager = "yarn"
)

// Detect infers the package manager from the lock file present at the
// repository root, defaulting to npm.
func Detect(rootDir string) Manager {
	switch {
	case fileExists(filepath.Join(rootDir, "pnpm-lock.yaml")):
		return PNPM
	case fileExists(filepath.Join(rootDir, "yarn.lock")):
		return Yarn
	default:
		return NPM
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// pnpmWorkspaces models pnpm-workspace.yaml.
type pnpmWorkspaces struct {
	Packages []string `yaml:"packages"`
}

// WorkspaceDirs expands the workspace patterns of a repository into the
// sub-package directories that contain a package.json. Patterns come from
// the root manifest's workspaces field, or from pnpm-workspace.yaml when it
// exists (pnpm ignores the manifest field). Patterns prefixed with "!"
// exclude matches. Results are absolute paths in sorted order.
func WorkspaceDirs(rootDir string, root *manifest.Manifest) ([]string, error) {
	patterns := root.Workspaces

	pnpmPath := filepath.Join(rootDir, "pnpm-workspace.yaml")
	if data, err := os.ReadFile(pnpmPath); err == nil {
		var pw pnpmWorkspaces
		if err := yaml.Unmarshal(data, &pw); err != nil {
			return nil, fmt.Errorf("parsing pnpm-workspace.yaml: %w", err)
		}
		patterns = pw.Packages
	}

	included := make(map[string]bool)
	for _, pattern := range patterns {
		exclude := strings.HasPrefix(pattern, "!")
		pattern = strings.TrimPrefix(pattern, "!")

		matches, err := filepath.Glob(filepath.Join(rootDir, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, fmt.Errorf("workspace pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if !fileExists(filepath.Join(match, "package.json")) {
				continue
			}
			included[match] = !exclude
		}
	}

	dirs := make([]string, 0, len(included))
	for dir, ok := range included {
		if ok {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// RunScript spawns "<manager> run <script>" in the given directory. Extra
// args are passed through after "--" for npm compatibility.
func RunScript(ctx context.Context, mgr Manager, dir, script string, args []string, stdout, stderr io.Writer) error {
	argv := []string{"run", script}
	if len(args) > 0 {
		if mgr == NPM {
			argv = append(argv, "--")
		}
		argv = append(argv, args...)
	}
	return runCommand(ctx, dir, string(mgr), argv, stdout, stderr)
}

// Exec spawns an arbitrary command in the given directory.
func Exec(ctx context.Context, dir, name string, args []string, stdout, stderr io.Writer) error {
	return runCommand(ctx, dir, name, args, stdout, stderr)
}

func runCommand(ctx context.Context, dir, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

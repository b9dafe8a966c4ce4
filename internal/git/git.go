package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// IsInstalled returns true if git is available on the system PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo returns true if the directory is inside a git repository.
func IsRepo(dir string) bool {
	err := run(dir, "rev-parse", "--git-dir")
	return err == nil
}

// HeadCommit returns the full SHA of HEAD.
func HeadCommit(repoDir string) (string, error) {
	out, err := output(repoDir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DirtyPaths returns the repo-relative paths with uncommitted changes.
func DirtyPaths(repoDir string) ([]string, error) {
	out, err := output(repoDir, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		// Porcelain lines are "XY <path>", possibly "XY <from> -> <to>".
		path := line[3:]
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		paths = append(paths, filepath.FromSlash(strings.Trim(path, `"`)))
	}
	return paths, nil
}

// IsPathDirty reports whether any uncommitted change touches the given
// repo-relative directory. rel "." matches any change.
func IsPathDirty(repoDir, rel string) (bool, error) {
	paths, err := DirtyPaths(repoDir)
	if err != nil {
		return false, err
	}
	if rel == "." {
		return len(paths) > 0, nil
	}
	prefix := filepath.Clean(rel) + string(filepath.Separator)
	for _, p := range paths {
		if strings.HasPrefix(p, prefix) {
			return true, nil
		}
	}
	return false, nil
}

// run executes a git command in the given directory, discarding output.
func run(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	return cmd.Run()
}

// output executes a git command and returns its stdout.
func output(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}

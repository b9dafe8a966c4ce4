package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/Shakeskeyboarde/monox/internal/git"
	"github.com/Shakeskeyboarde/monox/internal/manifest"
	"github.com/Shakeskeyboarde/monox/internal/ui"
	"github.com/Shakeskeyboarde/monox/internal/workspace"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version <major|minor|patch>",
		Short: "Bump selected workspace versions and update dependent ranges",
		Args:  cobra.ExactArgs(1),
		RunE:  runVersion,
	}
	cmd.Flags().Bool("changed-only", false, "Bump only workspaces with uncommitted git changes")
	return cmd
}

func runVersion(cmd *cobra.Command, args []string) error {
	bump := args[0]
	switch bump {
	case "major", "minor", "patch":
	default:
		return fmt.Errorf("unknown bump %q (must be major, minor, or patch)", bump)
	}
	changedOnly, _ := cmd.Flags().GetBool("changed-only")

	collection, rootDir, err := loadCollection(cmd, workspace.IterateIndependent)
	if err != nil {
		return err
	}

	if changedOnly {
		if !git.IsRepo(rootDir) {
			return fmt.Errorf("--changed-only requires a git repository at %s", rootDir)
		}
		for _, ws := range collection.Workspaces() {
			if !ws.Selected() {
				continue
			}
			dirty, err := git.IsPathDirty(rootDir, ws.Rel)
			if err != nil {
				return err
			}
			ws.SetSelected(dirty)
		}
	}

	// Remember which workspaces get a version bump, then widen the
	// selection so downstream packages are revisited for range rewrites.
	bumpTargets := make(map[string]bool)
	for _, ws := range collection.Selected() {
		bumpTargets[ws.Name] = true
	}
	collection.IncludeDependents(true)

	progress := ui.NewProgress(cmd.ErrOrStderr(), len(collection.Selected()))

	// Independent iteration: a dependency's new version is visible when its
	// dependents run, and nothing is rewritten downstream of a failure.
	result, err := collection.ForEachIndependent(cmd.Context(), func(ctx context.Context, ws *workspace.Workspace) error {
		return settle(progress, ws, applyBump(ws, bump, bumpTargets))
	})
	if err != nil {
		return err
	}

	progress.Finish(collection.Selected())
	printWarnings(cmd, result)
	return resultError(result)
}

// applyBump bumps the workspace version when it is a bump target, rewrites
// its range specifiers against any bumped dependency, and saves the
// manifest when something changed.
func applyBump(ws *workspace.Workspace, bump string, bumpTargets map[string]bool) error {
	changed := false
	if bumpTargets[ws.Name] {
		if ws.Version == "" {
			return ws.SetStatus(workspace.StatusSkipped, "unversioned")
		}
		current, err := semver.NewVersion(ws.Version)
		if err != nil {
			return fmt.Errorf("parsing version %q: %w", ws.Version, err)
		}
		next := increment(*current, bump)
		ws.Manifest.SetVersion(next.String())
		ws.Version = next.String()
		changed = true
	}

	for _, link := range ws.LocalLinks() {
		if link.Kind != workspace.SpecRange || !bumpTargets[link.Target.Name] {
			continue
		}
		spec := bumpedSpec(link.Spec, link.Target.Version)
		if spec == "" || spec == link.Spec {
			continue
		}
		ws.Manifest.SetDependency(link.Type.Section(), link.Name, spec)
		changed = true
	}

	if !changed {
		return nil
	}
	return manifest.Save(filepath.Join(ws.Dir, "package.json"), ws.Manifest)
}

func increment(v semver.Version, bump string) semver.Version {
	switch bump {
	case "major":
		return v.IncMajor()
	case "minor":
		return v.IncMinor()
	default:
		return v.IncPatch()
	}
}

// bumpedSpec rewrites a range specifier against a dependency's new version.
// Caret, tilde, and exact pins keep their operator; wildcards still match
// and are returned empty (no rewrite needed). Any other range, compound
// ranges included, is normalized to a caret on the new version so the
// rewritten spec is guaranteed to match it.
func bumpedSpec(spec, version string) string {
	prefix := ""
	rest := spec
	if strings.HasPrefix(spec, "workspace:") {
		prefix = "workspace:"
		rest = strings.TrimPrefix(spec, "workspace:")
	}

	switch {
	case rest == "*" || rest == "x" || rest == "X" || rest == "":
		return ""
	case strings.HasPrefix(rest, "^"):
		return prefix + "^" + version
	case strings.HasPrefix(rest, "~"):
		return prefix + "~" + version
	}
	if _, err := semver.NewVersion(rest); err == nil {
		// Exact pin.
		return prefix + version
	}
	return prefix + "^" + version
}

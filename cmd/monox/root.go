package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Shakeskeyboarde/monox/internal/manifest"
	"github.com/Shakeskeyboarde/monox/internal/pkgman"
	"github.com/Shakeskeyboarde/monox/internal/ui"
	"github.com/Shakeskeyboarde/monox/internal/workspace"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "monox",
		Short:   "Monorepo orchestration for JavaScript workspaces",
		Version: version,
	}

	cmd.PersistentFlags().String("root", ".", "Root directory of the monorepo")
	cmd.PersistentFlags().StringSliceP("workspace", "w", nil, "Select workspaces by name, keyword, directory glob, or \"private\" (default: all)")
	cmd.PersistentFlags().Bool("include-dependencies", false, "Grow the selection to transitive dependencies")
	cmd.PersistentFlags().Bool("include-dependents", false, "Grow the selection to transitive dependents")
	cmd.PersistentFlags().Bool("include-root", false, "Allow the root workspace to be selected")
	cmd.PersistentFlags().Int("concurrency", 0, "Max simultaneous actions for stream/independent (default: CPU count)")
	cmd.PersistentFlags().String("method", "", "Iteration method: parallel, sequential, stream, independent")

	cmd.AddCommand(
		newInitCmd(),
		newListCmd(),
		newGraphCmd(),
		newRunCmd(),
		newExecCmd(),
		newVersionCmd(),
	)

	return cmd
}

// loadCollection builds the workspace collection for a command invocation:
// it loads the root manifest, resolves the sub-package directories through
// the detected package manager conventions, builds the graph, and applies
// the selection flags.
func loadCollection(cmd *cobra.Command, defaultMethod workspace.IterationMethod) (*workspace.Collection, string, error) {
	root, _ := cmd.Flags().GetString("root")
	exprs, _ := cmd.Flags().GetStringSlice("workspace")
	withDeps, _ := cmd.Flags().GetBool("include-dependencies")
	withDependents, _ := cmd.Flags().GetBool("include-dependents")
	includeRoot, _ := cmd.Flags().GetBool("include-root")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	methodStr, _ := cmd.Flags().GetString("method")

	method := defaultMethod
	if methodStr != "" {
		var err error
		method, err = workspace.ParseIterationMethod(methodStr)
		if err != nil {
			return nil, "", err
		}
	}

	rootDir, err := filepath.Abs(root)
	if err != nil {
		return nil, "", fmt.Errorf("resolving root directory: %w", err)
	}

	rootManifest, err := manifest.Load(filepath.Join(rootDir, "package.json"))
	if err != nil {
		return nil, "", err
	}

	dirs, err := pkgman.WorkspaceDirs(rootDir, rootManifest)
	if err != nil {
		return nil, "", err
	}

	entries := make([]workspace.Entry, 0, len(dirs))
	for _, dir := range dirs {
		m, err := manifest.Load(filepath.Join(dir, "package.json"))
		if err != nil {
			return nil, "", err
		}
		entries = append(entries, workspace.Entry{Dir: dir, Manifest: m})
	}

	collection, err := workspace.New(workspace.Options{
		RootDir:                rootDir,
		Root:                   rootManifest,
		Workspaces:             entries,
		IncludeRoot:            includeRoot,
		Concurrency:            concurrency,
		DefaultIterationMethod: method,
	})
	if err != nil {
		return nil, "", err
	}

	if len(exprs) == 0 {
		exprs = []string{"**"}
	}
	if err := collection.Select(exprs...); err != nil {
		return nil, "", err
	}
	collection.IncludeDependencies(withDeps)
	collection.IncludeDependents(withDependents)

	return collection, rootDir, nil
}

// settle records the action outcome on the workspace, then reports it. The
// status must be terminal before Settle prints, otherwise the progress line
// would show pending.
func settle(progress *ui.Progress, ws *workspace.Workspace, err error) error {
	if status, _ := ws.Status(); !status.Terminal() {
		if err != nil {
			_ = ws.SetStatus(workspace.StatusFailure, err.Error())
		} else {
			_ = ws.SetStatus(workspace.StatusSuccess, "")
		}
	}
	progress.Settle(ws)
	return err
}

// printWarnings reports non-fatal scheduler diagnostics, such as broken
// dependency cycles.
func printWarnings(cmd *cobra.Command, result *workspace.Result) {
	for _, w := range result.Warnings {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), ui.WarnStyle.Render("warning: "+w))
	}
}

// resultError converts an aggregate result into the command error that sets
// the process exit code. Individual failures are already recorded on each
// workspace's status.
func resultError(result *workspace.Result) error {
	if result.OK() {
		return nil
	}
	return fmt.Errorf("%d workspace(s) failed", result.Failed)
}

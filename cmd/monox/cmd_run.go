package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shakeskeyboarde/monox/internal/pkgman"
	"github.com/Shakeskeyboarde/monox/internal/ui"
	"github.com/Shakeskeyboarde/monox/internal/workspace"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script> [-- <args...>]",
		Short: "Run a manifest script in each selected workspace",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRun,
	}
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	script := args[0]
	extra := args[1:]

	collection, rootDir, err := loadCollection(cmd, workspace.IterateStream)
	if err != nil {
		return err
	}

	mgr := pkgman.Detect(rootDir)
	progress := ui.NewProgress(cmd.ErrOrStderr(), len(collection.Selected()))

	result, err := collection.ForEach(cmd.Context(), func(ctx context.Context, ws *workspace.Workspace) error {
		if !ws.Manifest.HasScript(script) {
			return settle(progress, ws, ws.SetStatus(workspace.StatusSkipped, fmt.Sprintf("no %q script", script)))
		}

		var out bytes.Buffer
		err := pkgman.RunScript(ctx, mgr, ws.Dir, script, extra, &out, &out)
		if out.Len() > 0 {
			progress.Log("%s", out.String())
		}
		return settle(progress, ws, err)
	})
	if err != nil {
		return err
	}

	progress.Finish(collection.Selected())
	printWarnings(cmd, result)
	return resultError(result)
}

package main

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"

	"github.com/Shakeskeyboarde/monox/internal/pkgman"
	"github.com/Shakeskeyboarde/monox/internal/ui"
	"github.com/Shakeskeyboarde/monox/internal/workspace"
)

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec -- <command...>",
		Short: "Run an arbitrary command in each selected workspace",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExec,
	}
	return cmd
}

func runExec(cmd *cobra.Command, args []string) error {
	name := args[0]
	cmdArgs := args[1:]

	collection, _, err := loadCollection(cmd, workspace.IterateStream)
	if err != nil {
		return err
	}

	progress := ui.NewProgress(cmd.ErrOrStderr(), len(collection.Selected()))

	result, err := collection.ForEach(cmd.Context(), func(ctx context.Context, ws *workspace.Workspace) error {
		var out bytes.Buffer
		err := pkgman.Exec(ctx, ws.Dir, name, cmdArgs, &out, &out)
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

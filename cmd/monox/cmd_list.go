package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Shakeskeyboarde/monox/internal/ui"
	"github.com/Shakeskeyboarde/monox/internal/workspace"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the selected workspaces",
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type workspaceInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version,omitempty"`
	Private   bool   `json:"private"`
	Directory string `json:"directory"`
	Root      bool   `json:"root,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	collection, _, err := loadCollection(cmd, workspace.IterateParallel)
	if err != nil {
		return err
	}

	infos := make([]workspaceInfo, 0)
	for _, ws := range collection.Selected() {
		infos = append(infos, workspaceInfo{
			Name:      ws.Name,
			Version:   ws.Version,
			Private:   ws.Private,
			Directory: ws.Rel,
			Root:      ws.IsRoot,
		})
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tbl := ui.NewTable(out, "NAME", "VERSION", "PRIVATE", "DIRECTORY")
	for _, info := range infos {
		version := info.Version
		if version == "" {
			version = "-"
		}
		tbl.Row(info.Name, version, info.Private, info.Directory)
	}
	return tbl.Flush()
}

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Shakeskeyboarde/monox/internal/ui"
	"github.com/Shakeskeyboarde/monox/internal/workspace"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show resolved local dependency links between workspaces",
		RunE:  runGraph,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().Bool("all", false, "Include non-local dependency entries")
	return cmd
}

type linkInfo struct {
	Workspace string `json:"workspace"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	Spec      string `json:"spec"`
	Kind      string `json:"kind"`
	Target    string `json:"target,omitempty"`
}

func runGraph(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	all, _ := cmd.Flags().GetBool("all")

	collection, _, err := loadCollection(cmd, workspace.IterateParallel)
	if err != nil {
		return err
	}

	infos := make([]linkInfo, 0)
	for _, ws := range collection.Selected() {
		links := ws.Links()
		if !all {
			links = ws.LocalLinks()
		}
		for _, link := range links {
			info := linkInfo{
				Workspace: ws.Name,
				Type:      string(link.Type),
				Name:      link.Name,
				Spec:      link.Spec,
				Kind:      string(link.Kind),
			}
			if link.Local() {
				info.Target = link.Target.Name
			}
			infos = append(infos, info)
		}
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tbl := ui.NewTable(out, "WORKSPACE", "TYPE", "DEPENDENCY", "SPEC", "TARGET")
	for _, info := range infos {
		target := info.Target
		if target == "" {
			target = "(external)"
		}
		tbl.Row(info.Workspace, info.Type, info.Name, info.Spec, target)
	}
	return tbl.Flush()
}

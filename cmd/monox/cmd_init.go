package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create a workspace root package.json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}
	cmd.Flags().Bool("yes", false, "Skip prompts and use defaults")
	cmd.Flags().Bool("force", false, "Overwrite an existing package.json")
	cmd.Flags().String("pattern", "packages/*", "Workspace directory pattern")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	yes, _ := cmd.Flags().GetBool("yes")
	force, _ := cmd.Flags().GetBool("force")
	pattern, _ := cmd.Flags().GetString("pattern")

	manifestPath := filepath.Join(root, "package.json")
	if _, err := os.Stat(manifestPath); err == nil && !force {
		return fmt.Errorf("package.json already exists in %s (use --force to overwrite)", root)
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	private := true
	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("interactive init requires a TTY; pass a name and --yes")
		}
		var err error
		if name == "" {
			name, err = promptInput("Workspace root name", "my-monorepo", validatePackageName)
			if err != nil {
				return fmt.Errorf("interactive setup: %w", err)
			}
		}
		pattern, err = promptInput("Workspace directory pattern", pattern, nil)
		if err != nil {
			return fmt.Errorf("interactive setup: %w", err)
		}
		private, err = promptConfirm("Mark the root workspace private?", true)
		if err != nil {
			return fmt.Errorf("interactive setup: %w", err)
		}
	}
	if name == "" {
		return fmt.Errorf("a workspace root name is required")
	}
	if err := validatePackageName(name); err != nil {
		return err
	}
	if pattern == "" {
		pattern = "packages/*"
	}

	doc := map[string]any{
		"name":       name,
		"version":    "0.0.0",
		"private":    private,
		"workspaces": []string{pattern},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("building root manifest: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("creating root directory: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return fmt.Errorf("writing package.json: %w", err)
	}

	// Pre-create the first pattern's base directory so the layout is visible.
	if base, _, ok := strings.Cut(pattern, "*"); ok && base != "" {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(base, "/"))), 0755); err != nil {
			return fmt.Errorf("creating workspace directory: %w", err)
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Workspace root %q created at %s\n", name, root)
	return nil
}

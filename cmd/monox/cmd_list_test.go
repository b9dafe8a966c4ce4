package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRunList_table(t *testing.T) {
	dir := setupRepo(t)

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"--root", dir, "list"})
	if err := root.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	out := buf.String()
	for _, name := range []string{"pkg-a", "pkg-b", "pkg-c"} {
		if !strings.Contains(out, name) {
			t.Errorf("output missing %s:\n%s", name, out)
		}
	}
	if strings.Contains(out, "fixture-root") {
		t.Error("root workspace listed without --include-root")
	}
}

func TestRunList_json(t *testing.T) {
	dir := setupRepo(t)

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"--root", dir, "list", "--json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("list --json failed: %v", err)
	}

	var infos []workspaceInfo
	if err := json.Unmarshal(buf.Bytes(), &infos); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("entries = %d, want 3", len(infos))
	}
}

func TestRunList_selection(t *testing.T) {
	dir := setupRepo(t)

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"--root", dir, "-w", "pkg-c", "--include-dependencies", "list", "--json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var infos []workspaceInfo
	if err := json.Unmarshal(buf.Bytes(), &infos); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(infos) != 3 {
		t.Errorf("entries = %d, want 3 (pkg-c plus dependency closure)", len(infos))
	}
}

func TestRunList_keyword(t *testing.T) {
	dir := setupRepo(t)

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"--root", dir, "-w", "lib", "list", "--json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var infos []workspaceInfo
	if err := json.Unmarshal(buf.Bytes(), &infos); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "pkg-a" {
		t.Errorf("entries = %v, want only pkg-a", infos)
	}
}

func TestRunList_malformedExpression(t *testing.T) {
	dir := setupRepo(t)

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--root", dir, "-w", "packages/[", "list"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for malformed selection expression")
	}
}

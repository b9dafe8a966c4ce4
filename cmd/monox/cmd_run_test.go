package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunRun_missingScriptSkips(t *testing.T) {
	dir := setupRepo(t)

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"--root", dir, "run", "nope"})
	if err := root.Execute(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	progress := errOut.String()
	if !strings.Contains(progress, "[3/3]") {
		t.Errorf("expected all three workspaces settled:\n%s", progress)
	}
	if !strings.Contains(progress, `no "nope" script`) {
		t.Errorf("expected skip detail in output:\n%s", progress)
	}
	if !strings.Contains(progress, "skipped") {
		t.Errorf("expected skipped status in output:\n%s", progress)
	}
	if strings.Contains(progress, "failure") {
		t.Errorf("missing script must skip, not fail:\n%s", progress)
	}
}

func TestRunRun_requiresScriptName(t *testing.T) {
	dir := setupRepo(t)

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--root", dir, "run"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error when no script name is given")
	}
}

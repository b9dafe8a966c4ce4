package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunExec_commandPerWorkspace(t *testing.T) {
	dir := setupRepo(t)

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"--root", dir, "exec", "--", "sh", "-c", "basename $PWD"})
	if err := root.Execute(); err != nil {
		t.Fatalf("exec failed: %v", err)
	}

	progress := errOut.String()
	for _, name := range []string{"pkg-a", "pkg-b", "pkg-c"} {
		if !strings.Contains(progress, name) {
			t.Errorf("expected %s in output:\n%s", name, progress)
		}
	}
	if !strings.Contains(progress, "[3/3]") {
		t.Errorf("expected all three workspaces settled:\n%s", progress)
	}
}

func TestRunExec_progressShowsOutcome(t *testing.T) {
	dir := setupRepo(t)

	var errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&errOut)
	root.SetArgs([]string{"--root", dir, "-w", "pkg-a", "exec", "--", "true"})
	if err := root.Execute(); err != nil {
		t.Fatalf("exec failed: %v", err)
	}

	progress := errOut.String()
	if !strings.Contains(progress, "[1/1] pkg-a success") {
		t.Errorf("progress line must show the outcome:\n%s", progress)
	}
	if strings.Contains(progress, "pending") {
		t.Errorf("settled workspace reported as pending:\n%s", progress)
	}
}

func TestRunExec_failurePropagates(t *testing.T) {
	dir := setupRepo(t)

	var errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&errOut)
	root.SetArgs([]string{"--root", dir, "-w", "pkg-a", "exec", "--", "sh", "-c", "exit 1"})
	err := root.Execute()
	if err == nil {
		t.Fatal("expected error when the command fails")
	}
	if !strings.Contains(err.Error(), "1 workspace(s) failed") {
		t.Errorf("err = %v, want failure count", err)
	}
}

func TestRunExec_cascadeSkipsDependents(t *testing.T) {
	dir := setupRepo(t)

	var errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&errOut)
	root.SetArgs([]string{"--root", dir, "--method", "independent", "exec", "--", "sh", "-c", `test $(basename $PWD) != pkg-a`})
	err := root.Execute()
	if err == nil {
		t.Fatal("expected error when a command fails")
	}

	progress := errOut.String()
	if !strings.Contains(progress, "dependency pkg-a failed") {
		t.Errorf("expected pkg-b skipped for failed dependency:\n%s", progress)
	}
	if !strings.Contains(progress, "dependency pkg-b was skipped") {
		t.Errorf("expected pkg-c skipped for skipped dependency:\n%s", progress)
	}
}

package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Shakeskeyboarde/monox/internal/manifest"
	"github.com/Shakeskeyboarde/monox/internal/workspace"
)

func testWorkspace(t *testing.T, name string) *workspace.Workspace {
	t.Helper()
	m, err := manifest.Parse([]byte(`{"name": "` + name + `"}`))
	if err != nil {
		t.Fatal(err)
	}
	c, err := workspace.New(workspace.Options{
		RootDir:    t.TempDir(),
		Root:       m,
		Workspaces: nil,
	})
	if err != nil {
		t.Fatal(err)
	}
	return c.Root()
}

func TestProgress_settle(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 2)

	a := testWorkspace(t, "pkg-a")
	if err := a.SetStatus(workspace.StatusSuccess, ""); err != nil {
		t.Fatal(err)
	}
	p.Settle(a)

	b := testWorkspace(t, "pkg-b")
	if err := b.SetStatus(workspace.StatusSkipped, "no build script"); err != nil {
		t.Fatal(err)
	}
	p.Settle(b)

	out := buf.String()
	if !strings.Contains(out, "[1/2] pkg-a") {
		t.Errorf("output missing first settle line:\n%s", out)
	}
	if !strings.Contains(out, "[2/2] pkg-b") || !strings.Contains(out, "no build script") {
		t.Errorf("output missing second settle line with detail:\n%s", out)
	}
}

func TestProgress_settleOnce(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 1)

	a := testWorkspace(t, "pkg-a")
	if err := a.SetStatus(workspace.StatusSuccess, ""); err != nil {
		t.Fatal(err)
	}
	p.Settle(a)
	p.Settle(a)

	if got := strings.Count(buf.String(), "pkg-a"); got != 1 {
		t.Errorf("pkg-a reported %d times, want 1:\n%s", got, buf.String())
	}
}

func TestProgress_finishReportsUnsettled(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 2)

	a := testWorkspace(t, "pkg-a")
	if err := a.SetStatus(workspace.StatusSuccess, ""); err != nil {
		t.Fatal(err)
	}
	p.Settle(a)

	b := testWorkspace(t, "pkg-b")
	if err := b.SetStatus(workspace.StatusSkipped, "dependency pkg-a failed"); err != nil {
		t.Fatal(err)
	}
	p.Finish([]*workspace.Workspace{a, b})

	// pkg-b's skip detail also mentions pkg-a, so count the settle line
	// itself rather than the bare name.
	out := buf.String()
	if got := strings.Count(out, "[1/2] pkg-a"); got != 1 {
		t.Errorf("pkg-a settle line printed %d times, want 1:\n%s", got, out)
	}
	if !strings.Contains(out, "[2/2] pkg-b") || !strings.Contains(out, "dependency pkg-a failed") {
		t.Errorf("output missing finish line for pkg-b:\n%s", out)
	}
}

func TestProgress_log(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 1)
	p.Log("building %s", "pkg-a")
	if got := buf.String(); got != "building pkg-a\n" {
		t.Errorf("log output = %q", got)
	}
}

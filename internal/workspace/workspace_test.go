package workspace

import (
	"testing"

	"github.com/Shakeskeyboarde/monox/internal/manifest"
)

// mf parses an inline package.json for tests.
func mf(t *testing.T, src string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parsing test manifest: %v", err)
	}
	return m
}

func newCollection(t *testing.T, opts Options) *Collection {
	t.Helper()
	if opts.RootDir == "" {
		opts.RootDir = t.TempDir()
	}
	c, err := New(opts)
	if err != nil {
		t.Fatalf("building collection: %v", err)
	}
	return c
}

// fixture builds root -> pkg-a <- pkg-b <- pkg-c (b depends on a, c on b).
func fixture(t *testing.T) *Collection {
	t.Helper()
	return newCollection(t, Options{
		Root: mf(t, `{"name": "root", "private": true}`),
		Workspaces: []Entry{
			{Dir: "packages/pkg-a", Manifest: mf(t, `{"name": "pkg-a", "version": "1.0.0", "keywords": ["lib"]}`)},
			{Dir: "packages/pkg-b", Manifest: mf(t, `{"name": "pkg-b", "version": "1.0.0", "dependencies": {"pkg-a": "^1.0.0"}}`)},
			{Dir: "packages/pkg-c", Manifest: mf(t, `{"name": "pkg-c", "version": "1.0.0", "private": true, "dependencies": {"pkg-b": "^1.0.0"}}`)},
		},
	})
}

// graphCollection builds a collection of versionless-wildcard packages with
// the given dependency lists, registered in the given order.
func graphCollection(t *testing.T, concurrency int, nodes []string, deps map[string][]string) *Collection {
	t.Helper()
	entries := make([]Entry, 0, len(nodes))
	for _, name := range nodes {
		src := `{"name": "` + name + `", "version": "1.0.0"`
		if len(deps[name]) > 0 {
			src += `, "dependencies": {`
			for i, dep := range deps[name] {
				if i > 0 {
					src += ", "
				}
				src += `"` + dep + `": "*"`
			}
			src += `}`
		}
		src += `}`
		entries = append(entries, Entry{Dir: "packages/" + name, Manifest: mf(t, src)})
	}
	return newCollection(t, Options{
		Root:        mf(t, `{"name": "root"}`),
		Workspaces:  entries,
		Concurrency: concurrency,
	})
}

func names(workspaces []*Workspace) []string {
	out := make([]string, len(workspaces))
	for i, ws := range workspaces {
		out[i] = ws.Name
	}
	return out
}

func equalNames(got []*Workspace, want ...string) bool {
	g := names(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSetStatus_transitions(t *testing.T) {
	c := fixture(t)
	ws := c.Workspaces()[1]

	if status, _ := ws.Status(); status != StatusPending {
		t.Fatalf("initial status = %s, want pending", status)
	}
	if err := ws.SetStatus(StatusSuccess, ""); err != nil {
		t.Fatalf("pending -> success: %v", err)
	}
	if err := ws.SetStatus(StatusSuccess, ""); err != nil {
		t.Errorf("idempotent re-set should be a no-op, got %v", err)
	}
	if err := ws.SetStatus(StatusFailure, "boom"); err == nil {
		t.Error("expected error overwriting a terminal status")
	}
	if status, detail := ws.Status(); status != StatusSuccess || detail != "" {
		t.Errorf("status = %s %q, want success with empty detail", status, detail)
	}
}

func TestSetSelected_direct(t *testing.T) {
	c := fixture(t)
	if err := c.Select("pkg-a"); err != nil {
		t.Fatal(err)
	}

	b := c.Workspaces()[2]
	b.SetSelected(true)
	if !equalNames(c.Selected(), "pkg-a", "pkg-b") {
		t.Errorf("selected = %v, want [pkg-a pkg-b]", names(c.Selected()))
	}

	// Direct edits are part of the anchor: closure toggling sees them.
	c.IncludeDependents(true)
	if !equalNames(c.Selected(), "pkg-a", "pkg-b", "pkg-c") {
		t.Errorf("selected = %v, want [pkg-a pkg-b pkg-c]", names(c.Selected()))
	}
}

package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/Shakeskeyboarde/monox/internal/workspace"
)

// Progress tracks settled workspaces across concurrent actions with a
// simple counter display. Each workspace is reported at most once, so a
// post-run Finish pass can pick up workspaces that settled without their
// action running (cascade skips).
type Progress struct {
	out      io.Writer
	total    int
	mu       sync.Mutex
	reported map[*workspace.Workspace]bool
}

// NewProgress creates a progress tracker for n workspaces.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total, reported: make(map[*workspace.Workspace]bool)}
}

// Settle prints the workspace outcome, once per workspace.
func (p *Progress) Settle(ws *workspace.Workspace) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reported[ws] {
		return
	}
	p.reported[ws] = true

	status, detail := ws.Status()
	line := fmt.Sprintf("[%d/%d] %s %s", len(p.reported), p.total, ws.Name, RenderStatus(status))
	if detail != "" {
		line += " (" + detail + ")"
	}
	_, _ = fmt.Fprintln(p.out, line)
}

// Finish settles every workspace not yet reported. Workspaces skipped
// before their action could run are reported here.
func (p *Progress) Finish(workspaces []*workspace.Workspace) {
	for _, ws := range workspaces {
		p.Settle(ws)
	}
}

// Log prints an informational message within the progress context.
func (p *Progress) Log(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

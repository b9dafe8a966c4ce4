package workspace

import (
	"fmt"

	"github.com/Shakeskeyboarde/monox/internal/manifest"
)

// Status is the lifecycle state of a workspace within one run.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusSkipped Status = "skipped"
)

// Terminal reports whether the status can no longer change.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusSkipped:
		return true
	}
	return false
}

// Workspace is one package (root or sub-package) in the monorepo.
//
// Everything except the selection flag, the status, and the manifest
// document is immutable after the Collection is built. The manifest is
// exclusively owned: only the action running for this workspace (or a
// command, before scheduling) mutates it.
type Workspace struct {
	// Index is the stable registration order of the workspace, with the
	// root always at index 0.
	Index int

	Name     string
	Dir      string // absolute
	Rel      string // relative to the repo root, "." for the root itself
	IsRoot   bool
	Manifest *manifest.Manifest

	Version  string
	Private  bool
	Keywords []string

	links []Link

	collection *Collection

	selected bool
	anchored bool

	status       Status
	statusDetail string
}

// Selected reports whether the workspace is in the current selection.
func (w *Workspace) Selected() bool {
	return w.selected
}

// SetSelected directly toggles selection. The workspace becomes (or stops
// being) part of the anchor set, and the effective selection is recomputed
// so any enabled closure expansion sees the edit immediately.
func (w *Workspace) SetSelected(selected bool) {
	w.anchored = selected
	w.collection.recompute()
}

// Status returns the workspace status and its optional detail text.
func (w *Workspace) Status() (Status, string) {
	return w.status, w.statusDetail
}

// SetStatus transitions the workspace status. Pending is the only
// non-terminal state: re-setting the current terminal status is a no-op,
// while replacing one terminal status with another is an error.
func (w *Workspace) SetStatus(status Status, detail string) error {
	if w.status.Terminal() {
		if w.status == status {
			return nil
		}
		return fmt.Errorf("workspace %s: status is already %s, cannot set %s", w.Name, w.status, status)
	}
	w.status = status
	w.statusDetail = detail
	return nil
}

// Links returns every dependency entry declared by this workspace's
// manifest, local or not, in deterministic order.
func (w *Workspace) Links() []Link {
	return w.links
}

// LocalLinks returns only the links that resolved to another workspace in
// the same repository.
func (w *Workspace) LocalLinks() []Link {
	var local []Link
	for _, l := range w.links {
		if l.Local() {
			local = append(local, l)
		}
	}
	return local
}

func (w *Workspace) matches(expr string) bool {
	if expr == w.Name {
		return true
	}
	if expr == exprPrivate {
		return w.Private
	}
	if expr == exprAll {
		return !w.IsRoot
	}
	for _, kw := range w.Keywords {
		if expr == kw {
			return true
		}
	}
	if ok, _ := matchGlob(expr, w.Rel); ok {
		return true
	}
	return false
}

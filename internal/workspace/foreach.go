package workspace

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Action is the per-workspace operation a command supplies to the
// iteration methods. A returned error records a failure status on the
// workspace; it never aborts sibling workspaces.
type Action func(ctx context.Context, ws *Workspace) error

// Result aggregates the outcome of one iteration over the selected
// workspaces. The caller decides what to do with a failure (typically a
// non-zero exit code).
type Result struct {
	Succeeded int
	Failed    int
	Skipped   int

	// Warnings holds diagnostics that did not stop the run, such as a
	// dependency cycle broken by falling back to registration order.
	Warnings []string
}

// OK reports whether no workspace failed.
func (r *Result) OK() bool {
	return r.Failed == 0
}

// ForEach runs the action over the selected workspaces using the
// collection's default iteration method.
func (c *Collection) ForEach(ctx context.Context, action Action) (*Result, error) {
	switch c.method {
	case IterateParallel:
		return c.ForEachParallel(ctx, action)
	case IterateSequential:
		return c.ForEachSequential(ctx, action)
	case IterateStream:
		return c.ForEachStream(ctx, action)
	case IterateIndependent:
		return c.ForEachIndependent(ctx, action)
	default:
		return nil, fmt.Errorf("unknown iteration method: %q", c.method)
	}
}

// ForEachParallel launches every selected action at once. No ordering
// constraint, no concurrency cap.
func (c *Collection) ForEachParallel(ctx context.Context, action Action) (*Result, error) {
	selected := c.Selected()

	var wg sync.WaitGroup
	for _, ws := range selected {
		wg.Add(1)
		go func(ws *Workspace) {
			defer wg.Done()
			runAction(ctx, ws, action)
		}(ws)
	}
	wg.Wait()

	return collectResult(selected, nil), nil
}

// ForEachSequential runs actions one at a time, dependencies before
// dependents, ties broken by registration order.
func (c *Collection) ForEachSequential(ctx context.Context, action Action) (*Result, error) {
	selected := c.Selected()
	order, warnings := c.scheduleOrder(selected)

	for _, ws := range order {
		runAction(ctx, ws, action)
	}

	return collectResult(selected, warnings), nil
}

// ForEachStream runs actions under bounded concurrency. A workspace starts
// only once every selected dependency has settled, regardless of outcome.
func (c *Collection) ForEachStream(ctx context.Context, action Action) (*Result, error) {
	return c.stream(ctx, action, false)
}

// ForEachIndependent is ForEachStream plus failure cascading: when a
// selected dependency fails, every transitive dependent is marked skipped
// instead of invoked, so nothing runs against a known-bad dependency.
func (c *Collection) ForEachIndependent(ctx context.Context, action Action) (*Result, error) {
	return c.stream(ctx, action, true)
}

func (c *Collection) stream(ctx context.Context, action Action, cascade bool) (*Result, error) {
	selected := c.Selected()
	order, warnings := c.scheduleOrder(selected)

	// position of each selected workspace in the settle order; a workspace
	// awaits only dependencies placed before it, which is every selected
	// dependency unless a cycle edge was dropped.
	pos := make(map[int]int, len(order))
	for p, ws := range order {
		pos[ws.Index] = p
	}

	done := make([]chan struct{}, len(order))
	for p := range done {
		done[p] = make(chan struct{})
	}

	concurrency := c.concurrency
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}
	gate := semaphore.NewWeighted(int64(concurrency))

	var wg sync.WaitGroup
	for p, ws := range order {
		wg.Add(1)
		go func(p int, ws *Workspace) {
			defer wg.Done()
			defer close(done[p])

			for _, dep := range c.deps[ws.Index] {
				if dp, ok := pos[dep]; ok && dp < p {
					<-done[dp]
				}
			}

			if cascade {
				if detail, blocked := c.blockedByDependency(ws, pos, p); blocked {
					_ = ws.SetStatus(StatusSkipped, detail)
					return
				}
			}

			if err := gate.Acquire(ctx, 1); err != nil {
				_ = ws.SetStatus(StatusFailure, err.Error())
				return
			}
			defer gate.Release(1)

			runAction(ctx, ws, action)
		}(p, ws)
	}
	wg.Wait()

	return collectResult(selected, warnings), nil
}

// blockedByDependency reports whether any settled selected dependency of ws
// failed or was cascade-skipped, with a reason naming that dependency.
// Dependencies that settle before ws are exactly those placed earlier in
// the order, and reading their status is safe once their done channel has
// closed.
func (c *Collection) blockedByDependency(ws *Workspace, pos map[int]int, p int) (string, bool) {
	for _, dep := range c.deps[ws.Index] {
		dp, ok := pos[dep]
		if !ok || dp >= p {
			continue
		}
		target := c.workspaces[dep]
		switch status, _ := target.Status(); status {
		case StatusFailure:
			return fmt.Sprintf("dependency %s failed", target.Name), true
		case StatusSkipped:
			return fmt.Sprintf("dependency %s was skipped", target.Name), true
		}
	}
	return "", false
}

// scheduleOrder produces a dependency-before-dependent ordering of the
// selected workspaces, ties broken by registration order. A cycle in the
// selected subgraph is broken deterministically: the lowest-index stalled
// workspace is placed anyway and the condition is surfaced as a warning.
func (c *Collection) scheduleOrder(selected []*Workspace) ([]*Workspace, []string) {
	inSelection := make(map[int]bool, len(selected))
	for _, ws := range selected {
		inSelection[ws.Index] = true
	}

	indegree := make(map[int]int, len(selected))
	for _, ws := range selected {
		for _, dep := range c.deps[ws.Index] {
			if inSelection[dep] {
				indegree[ws.Index]++
			}
		}
	}

	placed := make(map[int]bool, len(selected))
	order := make([]*Workspace, 0, len(selected))
	var warnings []string

	for len(order) < len(selected) {
		next := c.nextReady(selected, placed, indegree)
		if next == nil {
			// Every unplaced workspace is waiting on another: a cycle.
			next = firstUnplaced(selected, placed)
			warnings = append(warnings, fmt.Sprintf(
				"dependency cycle involving %s: falling back to registration order", next.Name))
		}
		placed[next.Index] = true
		order = append(order, next)
		for _, dependent := range c.dependents[next.Index] {
			if inSelection[dependent] && !placed[dependent] {
				indegree[dependent]--
			}
		}
	}

	return order, warnings
}

func (c *Collection) nextReady(selected []*Workspace, placed map[int]bool, indegree map[int]int) *Workspace {
	for _, ws := range selected {
		if !placed[ws.Index] && indegree[ws.Index] <= 0 {
			return ws
		}
	}
	return nil
}

func firstUnplaced(selected []*Workspace, placed map[int]bool) *Workspace {
	for _, ws := range selected {
		if !placed[ws.Index] {
			return ws
		}
	}
	return nil
}

// runAction invokes the action once and records the outcome, unless the
// action itself already moved the workspace to a terminal status.
func runAction(ctx context.Context, ws *Workspace, action Action) {
	err := action(ctx, ws)
	if status, _ := ws.Status(); status.Terminal() {
		return
	}
	if err != nil {
		_ = ws.SetStatus(StatusFailure, err.Error())
		return
	}
	_ = ws.SetStatus(StatusSuccess, "")
}

func collectResult(selected []*Workspace, warnings []string) *Result {
	result := &Result{Warnings: warnings}
	for _, ws := range selected {
		switch status, _ := ws.Status(); status {
		case StatusSuccess:
			result.Succeeded++
		case StatusFailure:
			result.Failed++
		case StatusSkipped:
			result.Skipped++
		}
	}
	return result
}

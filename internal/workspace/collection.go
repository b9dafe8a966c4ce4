package workspace

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"

	"github.com/Shakeskeyboarde/monox/internal/manifest"
)

const (
	// exprAll selects every non-root workspace.
	exprAll = "**"
	// exprPrivate selects workspaces with "private": true.
	exprPrivate = "private"
)

// Entry is one sub-package supplied to New: its directory and its parsed
// manifest.
type Entry struct {
	Dir      string
	Manifest *manifest.Manifest
}

// Options configures a Collection.
type Options struct {
	RootDir                string
	Root                   *manifest.Manifest
	Workspaces             []Entry
	IncludeRoot            bool
	Concurrency            int
	DefaultIterationMethod IterationMethod
}

// Collection owns the workspace records, the dependency graph, and the
// selection state. It is built once per run; only selection flags, statuses,
// and manifest documents change afterwards.
type Collection struct {
	workspaces []*Workspace
	root       *Workspace
	byName     map[string]*Workspace

	// adjacency by workspace index
	deps       [][]int
	dependents [][]int

	includeRoot bool
	concurrency int
	method      IterationMethod

	withDependencies bool
	withDependents   bool
}

// New builds a Collection from a root manifest and its sub-package entries.
// The root workspace is always registered at index 0; graph edges are
// resolved once, immediately. Duplicate workspace names make the graph
// ill-formed.
func New(opts Options) (*Collection, error) {
	rootDir, err := filepath.Abs(opts.RootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	c := &Collection{
		byName:      make(map[string]*Workspace, len(opts.Workspaces)+1),
		includeRoot: opts.IncludeRoot,
		concurrency: opts.Concurrency,
		method:      opts.DefaultIterationMethod,
	}
	if c.method == "" {
		c.method = IterateParallel
	}

	c.root = c.register(rootDir, rootDir, opts.Root, true)
	if err := c.index(c.root); err != nil {
		return nil, err
	}
	for _, entry := range opts.Workspaces {
		dir := entry.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(rootDir, dir)
		}
		ws := c.register(rootDir, dir, entry.Manifest, false)
		if err := c.index(ws); err != nil {
			return nil, err
		}
	}

	c.resolveLinks()
	return c, nil
}

func (c *Collection) register(rootDir, dir string, m *manifest.Manifest, isRoot bool) *Workspace {
	rel := "."
	if !isRoot {
		if r, err := filepath.Rel(rootDir, dir); err == nil {
			rel = filepath.ToSlash(r)
		}
	}
	ws := &Workspace{
		Index:      len(c.workspaces),
		collection: c,
		Name:       m.Name,
		Dir:        dir,
		Rel:        rel,
		IsRoot:     isRoot,
		Manifest:   m,
		Version:    m.Version,
		Private:    m.Private,
		Keywords:   m.Keywords,
		status:     StatusPending,
	}
	c.workspaces = append(c.workspaces, ws)
	return ws
}

func (c *Collection) index(ws *Workspace) error {
	if ws.Name == "" {
		return &GraphResolutionError{Reason: fmt.Sprintf("workspace at %s has no name", ws.Dir)}
	}
	if _, ok := c.byName[ws.Name]; ok {
		return &GraphResolutionError{Reason: fmt.Sprintf("duplicate workspace name %q", ws.Name)}
	}
	c.byName[ws.Name] = ws
	return nil
}

// resolveLinks walks every dependency entry of every workspace and records
// a graph edge for each one that resolves to an in-repo workspace. External
// dependencies are recorded as non-local links, never as errors.
func (c *Collection) resolveLinks() {
	c.deps = make([][]int, len(c.workspaces))
	c.dependents = make([][]int, len(c.workspaces))

	for _, ws := range c.workspaces {
		for _, section := range manifest.Sections {
			entries := ws.Manifest.Dependencies(section)
			names := make([]string, 0, len(entries))
			for name := range entries {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				link := c.resolveLink(ws, section, name, entries[name])
				ws.links = append(ws.links, link)
				if link.Target != nil {
					c.addEdge(ws.Index, link.Target.Index)
				}
			}
		}
	}
}

func (c *Collection) resolveLink(ws *Workspace, section manifest.DependencySection, name, spec string) Link {
	kind, rangeSpec := classifySpec(spec)
	link := Link{
		Type: linkTypes[section],
		Name: name,
		Spec: spec,
		Kind: kind,
	}

	target, ok := c.byName[name]
	if !ok || target == ws {
		return link
	}

	switch kind {
	case SpecFile:
		link.Target = target
	case SpecRange:
		if rangeSatisfied(rangeSpec, target.Version) {
			link.Target = target
		}
	}
	// url and tag specifiers never form local edges.
	return link
}

func (c *Collection) addEdge(dependent, dependency int) {
	for _, d := range c.deps[dependent] {
		if d == dependency {
			return
		}
	}
	c.deps[dependent] = append(c.deps[dependent], dependency)
	c.dependents[dependency] = append(c.dependents[dependency], dependent)
}

// Workspaces returns every workspace in registration order, root first.
func (c *Collection) Workspaces() []*Workspace {
	return c.workspaces
}

// Root returns the root workspace.
func (c *Collection) Root() *Workspace {
	return c.root
}

// Selected returns the currently selected workspaces in registration order.
func (c *Collection) Selected() []*Workspace {
	var selected []*Workspace
	for _, ws := range c.workspaces {
		if ws.selected {
			selected = append(selected, ws)
		}
	}
	return selected
}

// Dependencies returns the workspaces that ws directly depends on.
func (c *Collection) Dependencies(ws *Workspace) []*Workspace {
	return c.resolveIndexes(c.deps[ws.Index])
}

// Dependents returns the workspaces that directly depend on ws.
func (c *Collection) Dependents(ws *Workspace) []*Workspace {
	return c.resolveIndexes(c.dependents[ws.Index])
}

func (c *Collection) resolveIndexes(indexes []int) []*Workspace {
	out := make([]*Workspace, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, c.workspaces[i])
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

// Select replaces the anchor selection with the union of workspaces matched
// by any of the given expressions. An expression matches by exact name,
// keyword, glob against the repository-relative directory, the literal
// token "private", or "**" for every non-root workspace. The root workspace
// is a match target only when the collection was built with IncludeRoot.
//
// A malformed expression fails the whole call with a SelectionError and
// leaves the selection untouched; an expression that matches nothing is not
// an error.
func (c *Collection) Select(exprs ...string) error {
	for _, expr := range exprs {
		if _, err := path.Match(expr, ""); err != nil {
			return &SelectionError{Expr: expr, Err: err}
		}
	}

	for _, ws := range c.workspaces {
		if ws.IsRoot && !c.includeRoot {
			ws.anchored = false
			continue
		}
		anchored := false
		for _, expr := range exprs {
			if ws.matches(expr) {
				anchored = true
				break
			}
		}
		ws.anchored = anchored
	}

	c.recompute()
	return nil
}

// IncludeDependencies grows (or stops growing) the selection to the
// transitive dependency closure of the anchor set. Toggling is idempotent
// and always recomputes from the most recent anchor selection.
func (c *Collection) IncludeDependencies(enabled bool) {
	c.withDependencies = enabled
	c.recompute()
}

// IncludeDependents grows (or stops growing) the selection to the
// transitive dependent closure of the anchor set. Both closure directions
// may be enabled at once; each expands independently from the same anchor.
func (c *Collection) IncludeDependents(enabled bool) {
	c.withDependents = enabled
	c.recompute()
}

// recompute derives the effective selection from the anchor set and the
// closure flags. It is a full recomputation rather than an incremental
// patch, which keeps toggle semantics trivially reversible.
func (c *Collection) recompute() {
	for _, ws := range c.workspaces {
		ws.selected = ws.anchored
	}
	if c.withDependencies {
		c.expand(c.deps)
	}
	if c.withDependents {
		c.expand(c.dependents)
	}
}

// expand marks every workspace reachable from the anchor set along the
// given adjacency as selected. Visited tracking makes cycles safe.
func (c *Collection) expand(adjacency [][]int) {
	visited := make([]bool, len(c.workspaces))
	var walk func(i int)
	walk = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true
		c.workspaces[i].selected = true
		for _, next := range adjacency[i] {
			walk(next)
		}
	}
	for _, ws := range c.workspaces {
		if ws.anchored {
			visited[ws.Index] = true
			for _, next := range adjacency[ws.Index] {
				walk(next)
			}
		}
	}
}

func matchGlob(pattern, rel string) (bool, error) {
	return path.Match(pattern, rel)
}

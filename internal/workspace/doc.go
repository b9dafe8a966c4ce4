// Package workspace models a monorepo as a graph of workspaces and runs
// actions over a selected subset of them. It provides the Collection type
// that owns the workspace records, the resolved dependency graph, the
// selection state, and the per-workspace iteration methods (parallel,
// sequential, stream, independent).
package workspace

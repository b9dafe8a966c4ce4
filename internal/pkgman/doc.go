// Package pkgman detects which JavaScript package manager owns a repository,
// resolves the workspace directories declared by its manifests, and spawns
// manifest-declared scripts.
package pkgman

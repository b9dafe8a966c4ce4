// Package git provides a thin wrapper around the Git CLI for the queries
// monox commands need: repository and dirty-state detection and the HEAD
// commit. It does not depend on other internal packages.
package git

package main

import (
	"testing"

	"github.com/Shakeskeyboarde/monox/internal/testutil"
)

// setupRepo creates a monorepo fixture: pkg-a <- pkg-b <- pkg-c.
func setupRepo(t *testing.T) string {
	t.Helper()
	return testutil.NewRepo(t,
		map[string]any{
			"name":       "fixture-root",
			"private":    true,
			"workspaces": []string{"packages/*"},
		},
		map[string]map[string]any{
			"packages/pkg-a": {
				"name":     "pkg-a",
				"version":  "1.0.0",
				"keywords": []string{"lib"},
			},
			"packages/pkg-b": {
				"name":         "pkg-b",
				"version":      "1.0.0",
				"dependencies": map[string]any{"pkg-a": "^1.0.0"},
			},
			"packages/pkg-c": {
				"name":         "pkg-c",
				"version":      "1.0.0",
				"private":      true,
				"dependencies": map[string]any{"pkg-b": "^1.0.0"},
			},
		})
}

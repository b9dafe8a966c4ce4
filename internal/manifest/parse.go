package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and parses a package.json file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse parses package.json content.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest JSON: %w", err)
	}

	m := &Manifest{raw: raw}
	m.Name, _ = raw["name"].(string)
	m.Version, _ = raw["version"].(string)
	m.Private, _ = raw["private"].(bool)
	m.Keywords = stringSlice(raw["keywords"])
	m.Workspaces = parseWorkspaces(raw["workspaces"])
	m.Scripts = stringMap(raw["scripts"])

	for _, section := range Sections {
		if entries := stringMap(raw[string(section)]); entries != nil {
			if m.deps == nil {
				m.deps = make(map[DependencySection]map[string]string)
			}
			m.deps[section] = entries
		}
	}

	return m, nil
}

// Save writes the manifest's raw document back to disk.
func Save(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m.raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// parseWorkspaces accepts both the array form and the yarn object form
// ({"packages": [...]}) of the workspaces field.
func parseWorkspaces(v any) []string {
	switch w := v.(type) {
	case []any:
		return stringSlice(w)
	case map[string]any:
		return stringSlice(w["packages"])
	default:
		return nil
	}
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringMap(v any) map[string]string {
	entries, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(entries))
	for k, item := range entries {
		if s, ok := item.(string); ok {
			out[k] = s
		}
	}
	return out
}

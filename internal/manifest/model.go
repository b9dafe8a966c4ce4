package manifest

// DependencySection identifies which package.json section declared a dependency.
type DependencySection string

const (
	SectionDependencies         DependencySection = "dependencies"
	SectionDevDependencies      DependencySection = "devDependencies"
	SectionPeerDependencies     DependencySection = "peerDependencies"
	SectionOptionalDependencies DependencySection = "optionalDependencies"
)

// Sections lists the dependency sections in their conventional order.
var Sections = []DependencySection{
	SectionDependencies,
	SectionDevDependencies,
	SectionPeerDependencies,
	SectionOptionalDependencies,
}

// Manifest represents a parsed package.json document.
//
// Typed fields are decoded views; the raw document is retained so that
// mutations (version bumps, dependency rewrites) can be written back without
// dropping fields the tool does not model.
type Manifest struct {
	Name       string
	Version    string
	Private    bool
	Keywords   []string
	Workspaces []string
	Scripts    map[string]string

	deps map[DependencySection]map[string]string
	raw  map[string]any
}

// Dependencies returns the name -> specifier entries of one section.
// The returned map is nil when the section is absent.
func (m *Manifest) Dependencies(section DependencySection) map[string]string {
	return m.deps[section]
}

// HasScript reports whether the manifest declares the named script.
func (m *Manifest) HasScript(name string) bool {
	_, ok := m.Scripts[name]
	return ok
}

// SetVersion updates the manifest version, writing through to the raw document.
func (m *Manifest) SetVersion(version string) {
	m.Version = version
	m.raw["version"] = version
}

// SetDependency updates (or adds) a dependency specifier in the given section,
// writing through to the raw document.
func (m *Manifest) SetDependency(section DependencySection, name, spec string) {
	if m.deps == nil {
		m.deps = make(map[DependencySection]map[string]string)
	}
	if m.deps[section] == nil {
		m.deps[section] = make(map[string]string)
	}
	m.deps[section][name] = spec

	sec, ok := m.raw[string(section)].(map[string]any)
	if !ok {
		sec = make(map[string]any)
		m.raw[string(section)] = sec
	}
	sec[name] = spec
}

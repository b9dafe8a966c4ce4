package workspace

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/Shakeskeyboarde/monox/internal/manifest"
)

// LinkType identifies the manifest section that declared a dependency.
type LinkType string

const (
	LinkRuntime  LinkType = "runtime"
	LinkDev      LinkType = "dev"
	LinkPeer     LinkType = "peer"
	LinkOptional LinkType = "optional"
)

var linkTypes = map[manifest.DependencySection]LinkType{
	manifest.SectionDependencies:         LinkRuntime,
	manifest.SectionDevDependencies:      LinkDev,
	manifest.SectionPeerDependencies:     LinkPeer,
	manifest.SectionOptionalDependencies: LinkOptional,
}

// Section returns the manifest dependency section that produces this link
// type.
func (t LinkType) Section() manifest.DependencySection {
	for section, lt := range linkTypes {
		if lt == t {
			return section
		}
	}
	return manifest.SectionDependencies
}

// SpecKind classifies a dependency specifier.
type SpecKind string

const (
	SpecRange SpecKind = "range" // semver range, possibly workspace:-prefixed
	SpecURL   SpecKind = "url"   // url or git reference
	SpecTag   SpecKind = "tag"   // dist-tag like "latest"
	SpecFile  SpecKind = "file"  // file: or link: reference
)

// Link is one declared dependency of a workspace. Target is non-nil only
// when the specifier resolved to another workspace in the same repository;
// non-local links are still recorded so they can be inspected, but they
// contribute no graph edge.
type Link struct {
	Type   LinkType
	Name   string
	Spec   string
	Kind   SpecKind
	Target *Workspace
}

// Local reports whether the link resolved to an in-repo workspace.
func (l Link) Local() bool {
	return l.Target != nil
}

// classifySpec determines the kind of a dependency specifier. The range
// string returned is the specifier with any workspace: prefix stripped, and
// is only meaningful for SpecRange.
func classifySpec(spec string) (SpecKind, string) {
	rangeSpec := strings.TrimPrefix(spec, "workspace:")

	switch {
	case strings.HasPrefix(spec, "file:"), strings.HasPrefix(spec, "link:"):
		return SpecFile, ""
	case strings.Contains(spec, "://"),
		strings.HasPrefix(spec, "git+"),
		strings.HasPrefix(spec, "git@"),
		strings.HasPrefix(spec, "github:"):
		return SpecURL, ""
	}

	if isWildcard(rangeSpec) {
		return SpecRange, rangeSpec
	}
	if _, err := semver.NewConstraint(rangeSpec); err == nil {
		return SpecRange, rangeSpec
	}
	return SpecTag, ""
}

func isWildcard(spec string) bool {
	switch spec {
	case "*", "x", "X", "":
		return true
	}
	return false
}

// rangeSatisfied reports whether a target workspace version satisfies a
// semver range specifier. Wildcard ranges match any target, including
// unversioned ones; a non-wildcard range never matches an unversioned
// target.
func rangeSatisfied(rangeSpec, version string) bool {
	if isWildcard(rangeSpec) {
		return true
	}
	if version == "" {
		return false
	}
	c, err := semver.NewConstraint(rangeSpec)
	if err != nil {
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return c.Check(v)
}

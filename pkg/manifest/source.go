package manifest

// SourceKind says where a dependency is resolved from.
type SourceKind int

const (
	// SourceRegistry is a crates.io dependency.
	SourceRegistry SourceKind = iota
	// SourceLocalPath is a dependency on a directory on disk.
	SourceLocalPath
	// SourceVersionControl is a dependency on a git repository.
	SourceVersionControl
)

func (k SourceKind) String() string {
	switch k {
	case SourceLocalPath:
		return "path"
	case SourceVersionControl:
		return "git"
	default:
		return "registry"
	}
}

// Source is the classification of a dependency. Location holds the path or
// git locator and is empty for registry dependencies.
type Source struct {
	Kind     SourceKind
	Location string
}

// Source classifies the dependency. A non-empty path takes precedence over a
// git locator when both are set; a dependency with neither (including every
// Simple dependency) is a registry dependency.
func (d Dependency) Source() Source {
	switch {
	case d.path != "":
		return Source{Kind: SourceLocalPath, Location: d.path}
	case d.git != "":
		return Source{Kind: SourceVersionControl, Location: d.git}
	default:
		return Source{Kind: SourceRegistry}
	}
}

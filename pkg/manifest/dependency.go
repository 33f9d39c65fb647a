package manifest

import (
	"fmt"
)

// Dependency is one value of the [dependencies] table. It is either Simple
// (a bare version string) or Detailed (a table with optional version, path
// and git keys).
type Dependency struct {
	detailed bool
	version  string
	path     string
	git      string
}

// NewSimple returns a dependency declared as a bare version string.
func NewSimple(version string) Dependency {
	return Dependency{version: version}
}

// NewDetailed returns a dependency declared as a table. Empty arguments mean
// the key was absent.
func NewDetailed(version, path, git string) Dependency {
	return Dependency{detailed: true, version: version, path: path, git: git}
}

// IsDetailed reports whether the dependency was declared as a table.
func (d Dependency) IsDetailed() bool { return d.detailed }

// Version returns the declared version requirement. A Simple dependency
// always has one; a Detailed one only if the version key was set.
func (d Dependency) Version() (string, bool) {
	if !d.detailed {
		return d.version, true
	}
	return d.version, d.version != ""
}

// Path returns the local path key of a Detailed dependency.
func (d Dependency) Path() string { return d.path }

// Git returns the git key of a Detailed dependency.
func (d Dependency) Git() string { return d.git }

// UnmarshalTOML implements [toml.Unmarshaler]. The variant is picked from the
// shape of the value: a string is Simple, a table is Detailed.
//
// [toml.Unmarshaler]: https://pkg.go.dev/github.com/BurntSushi/toml#Unmarshaler
func (d *Dependency) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		*d = NewSimple(val)
		return nil
	case map[string]any:
		version, err := optionalString(val, "version")
		if err != nil {
			return err
		}
		path, err := optionalString(val, "path")
		if err != nil {
			return err
		}
		git, err := optionalString(val, "git")
		if err != nil {
			return err
		}
		*d = NewDetailed(version, path, git)
		return nil
	default:
		return fmt.Errorf("dependency must be a version string or a table, got %T", v)
	}
}

func optionalString(table map[string]any, key string) (string, error) {
	raw, ok := table[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("dependency key %q must be a string, got %T", key, raw)
	}
	return s, nil
}

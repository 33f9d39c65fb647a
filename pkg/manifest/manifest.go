package manifest

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cargocite/pkg/errors"
)

// FileName is the manifest file name searched for and parsed.
const FileName = "Cargo.toml"

// Package is the [package] section of a manifest.
// Empty optional fields mean the key was absent.
type Package struct {
	Name        string
	Version     string
	Authors     []string
	Description string
	Repository  string
	Keywords    []string
}

// Manifest is one parsed Cargo.toml.
type Manifest struct {
	Package      Package
	Dependencies map[string]Dependency
}

// NamedDependency pairs a dependency with its key in the [dependencies] table.
type NamedDependency struct {
	Name string
	Dependency
}

// OrderedDependencies returns the dependencies sorted by name.
func (m *Manifest) OrderedDependencies() []NamedDependency {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]NamedDependency, len(names))
	for i, name := range names {
		out[i] = NamedDependency{Name: name, Dependency: m.Dependencies[name]}
	}
	return out
}

// Load opens and parses the manifest at path.
//
// Returns errors coded [errors.ErrCodeFileOpen], [errors.ErrCodeFileRead] or
// [errors.ErrCodeManifestParse] depending on which step failed.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileOpen, err, "could not open %s", path)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "could not read %s", path)
	}

	m, err := parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifestParse, err, "invalid %s at %s", FileName, path)
	}
	return m, nil
}

// Parse decodes raw manifest bytes. Malformed TOML and schema violations
// (missing package name or version, wrongly typed fields) return an
// [errors.ErrCodeManifestParse] error.
func Parse(data []byte) (*Manifest, error) {
	m, err := parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifestParse, err, "invalid %s", FileName)
	}
	return m, nil
}

func parse(data []byte) (*Manifest, error) {
	var cargo cargoFile
	md, err := toml.Decode(string(data), &cargo)
	if err != nil {
		return nil, err
	}

	switch {
	case !md.IsDefined("package"):
		return nil, missingField("package")
	case !md.IsDefined("package", "name") || cargo.Package.Name == "":
		return nil, missingField("package.name")
	case !md.IsDefined("package", "version"):
		return nil, missingField("package.version")
	}

	authors := cargo.Package.Authors
	if authors == nil {
		authors = []string{}
	}
	deps := cargo.Dependencies
	if deps == nil {
		deps = map[string]Dependency{}
	}

	return &Manifest{
		Package: Package{
			Name:        cargo.Package.Name,
			Version:     cargo.Package.Version,
			Authors:     authors,
			Description: cargo.Package.Description,
			Repository:  cargo.Package.Repository,
			Keywords:    cargo.Package.Keywords,
		},
		Dependencies: deps,
	}, nil
}

func missingField(field string) error {
	return fmt.Errorf("missing field `%s`", field)
}

type cargoFile struct {
	Package struct {
		Name        string   `toml:"name"`
		Version     string   `toml:"version"`
		Authors     []string `toml:"authors"`
		Description string   `toml:"description"`
		Repository  string   `toml:"repository"`
		Keywords    []string `toml:"keywords"`
	} `toml:"package"`
	Dependencies map[string]Dependency `toml:"dependencies"`
}

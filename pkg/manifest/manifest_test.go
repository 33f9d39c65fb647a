package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cargocite/pkg/errors"
)

func TestParse_FullPackage(t *testing.T) {
	m, err := Parse([]byte(`
[package]
name = "foo"
version = "0.1.0"
authors = ["A B", "C D <c@d.org>"]
description = "A foo library"
repository = "https://github.com/me/foo"
keywords = ["cite", "bibtex"]
edition = "2021"

[dependencies]
serde = "1.0"
local = { path = "../local" }
forked = { git = "https://github.com/me/forked", version = "0.3", features = ["x"] }

[dev-dependencies]
tempfile = "3"
`))
	require.NoError(t, err)

	assert.Equal(t, Package{
		Name:        "foo",
		Version:     "0.1.0",
		Authors:     []string{"A B", "C D <c@d.org>"},
		Description: "A foo library",
		Repository:  "https://github.com/me/foo",
		Keywords:    []string{"cite", "bibtex"},
	}, m.Package)

	require.Len(t, m.Dependencies, 3)
	assert.Equal(t, NewSimple("1.0"), m.Dependencies["serde"])
	assert.Equal(t, NewDetailed("", "../local", ""), m.Dependencies["local"])
	assert.Equal(t, NewDetailed("0.3", "", "https://github.com/me/forked"), m.Dependencies["forked"])
}

func TestParse_Defaults(t *testing.T) {
	m, err := Parse([]byte(`
[package]
name = "foo"
version = "0.1.0"
`))
	require.NoError(t, err)

	assert.NotNil(t, m.Package.Authors)
	assert.Empty(t, m.Package.Authors)
	assert.Empty(t, m.Package.Description)
	assert.Empty(t, m.Package.Repository)
	assert.Nil(t, m.Package.Keywords)
	assert.NotNil(t, m.Dependencies)
	assert.Empty(t, m.OrderedDependencies())
}

func TestParse_NonSemverVersion(t *testing.T) {
	m, err := Parse([]byte(`
[package]
name = "foo"
version = "not-a-version"
`))
	require.NoError(t, err)
	assert.Equal(t, "not-a-version", m.Package.Version)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", `[package`},
		{"no package section", "[dependencies]\nserde = \"1\"\n"},
		{"workspace root", "[workspace]\nmembers = [\"a\"]\n"},
		{"missing name", "[package]\nversion = \"0.1.0\"\n"},
		{"empty name", "[package]\nname = \"\"\nversion = \"0.1.0\"\n"},
		{"missing version", "[package]\nname = \"foo\"\n"},
		{"version wrong type", "[package]\nname = \"foo\"\nversion = 1\n"},
		{"authors wrong type", "[package]\nname = \"foo\"\nversion = \"1\"\nauthors = \"A B\"\n"},
		{"dependency wrong type", "[package]\nname = \"foo\"\nversion = \"1\"\n[dependencies]\nserde = 1\n"},
		{"dependency key wrong type", "[package]\nname = \"foo\"\nversion = \"1\"\n[dependencies]\nserde = { version = 1 }\n"},
		{"package not a table", "package = \"foo\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m *Manifest
			var err error
			require.NotPanics(t, func() { m, err = Parse([]byte(tt.content)) })
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, errors.ErrCodeManifestParse), "got %v", err)
		})
	}
}

func TestOrderedDependencies(t *testing.T) {
	m, err := Parse([]byte(`
[package]
name = "foo"
version = "0.1.0"

[dependencies]
tokio = "1"
anyhow = "1"
serde = "1"
`))
	require.NoError(t, err)

	var names []string
	for _, d := range m.OrderedDependencies() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"anyhow", "serde", "tokio"}, names)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("[package]\nname = \"foo\"\nversion = \"0.1.0\"\n"), 0644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "foo", m.Package.Name)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing", FileName))
	assert.True(t, errors.Is(err, errors.ErrCodeFileOpen), "got %v", err)

	// A directory opens fine but cannot be read as a file.
	sub := filepath.Join(dir, FileName)
	require.NoError(t, os.Mkdir(sub, 0755))
	_, err = Load(sub)
	assert.True(t, errors.Is(err, errors.ErrCodeFileRead), "got %v", err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[package]\nname = \"foo\"\n"), 0644))
	_, err = Load(bad)
	require.True(t, errors.Is(err, errors.ErrCodeManifestParse), "got %v", err)
	assert.Contains(t, err.Error(), bad)
	assert.Contains(t, err.Error(), "package.version")
}

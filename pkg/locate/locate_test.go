package locate

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cargo = "[package]\nname = \"x\"\nversion = \"0.1.0\"\n"

// tree creates files (relative, slash separated) under a fresh temp dir.
func tree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(cargo), 0644))
	}
	return root
}

func testLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestFind_Depth(t *testing.T) {
	root := tree(t,
		"Cargo.toml",
		"a/Cargo.toml",
		"a/b/Cargo.toml",
		"a/b/c/Cargo.toml",
		"z/Cargo.toml",
	)

	tests := []struct {
		name     string
		maxDepth int
		want     []string
	}{
		{"root only", 0, []string{"Cargo.toml"}},
		{"one level", 1, []string{"Cargo.toml", "a/Cargo.toml", "z/Cargo.toml"}},
		{"two levels", 2, []string{"Cargo.toml", "a/Cargo.toml", "a/b/Cargo.toml", "z/Cargo.toml"}},
		{"unbounded", Unbounded, []string{"Cargo.toml", "a/Cargo.toml", "a/b/Cargo.toml", "a/b/c/Cargo.toml", "z/Cargo.toml"}},
		{"any negative", -7, []string{"Cargo.toml", "a/Cargo.toml", "a/b/Cargo.toml", "a/b/c/Cargo.toml", "z/Cargo.toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			got := Find(root, tt.maxDepth, WithLogger(testLogger(&buf)))
			assert.Equal(t, tt.want, rel(t, root, got))
		})
	}
}

func TestFind_NestedManifestBoundary(t *testing.T) {
	root := tree(t, "sub/Cargo.toml")
	var buf bytes.Buffer
	l := WithLogger(testLogger(&buf))

	assert.Empty(t, Find(root, 0, l))
	assert.Equal(t, []string{"sub/Cargo.toml"}, rel(t, root, Find(root, Unbounded, l)))
	assert.Equal(t, []string{"sub/Cargo.toml"}, rel(t, root, Find(root, -1, l)))
}

func TestFind_Idempotent(t *testing.T) {
	root := tree(t, "Cargo.toml", "x/Cargo.toml", "y/z/Cargo.toml", "y/Cargo.toml")
	var buf bytes.Buffer

	first := Find(root, Unbounded, WithLogger(testLogger(&buf)))
	second := Find(root, Unbounded, WithLogger(testLogger(&buf)))
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
}

func TestFind_ExactNameOnly(t *testing.T) {
	root := tree(t, "cargo.toml", "Cargo.toml.bak", "Cargo.lock", "sub/Cargo.toml")
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir", "Cargo.toml"), 0755))

	var buf bytes.Buffer
	got := Find(root, Unbounded, WithLogger(testLogger(&buf)))
	assert.Equal(t, []string{"sub/Cargo.toml"}, rel(t, root, got))
}

func TestFind_FollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	outside := tree(t, "Cargo.toml")
	root := tree(t)
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linked")))

	var buf bytes.Buffer
	got := Find(root, Unbounded, WithLogger(testLogger(&buf)))
	assert.Equal(t, []string{"linked/Cargo.toml"}, rel(t, root, got))
}

func TestFind_SkipsBrokenLinksAndLoops(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := tree(t, "Cargo.toml", "a/Cargo.toml")
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "broken")))
	require.NoError(t, os.Symlink(root, filepath.Join(root, "a", "loop")))

	var buf bytes.Buffer
	got := Find(root, Unbounded, WithLogger(testLogger(&buf)))

	assert.Equal(t, []string{"Cargo.toml", "a/Cargo.toml"}, rel(t, root, got))
	assert.Contains(t, buf.String(), "broken")
	assert.Contains(t, buf.String(), "loop")
	assert.Contains(t, buf.String(), "TRAVERSAL_ENTRY")
}

func TestFind_UnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	root := tree(t, "Cargo.toml", "locked/Cargo.toml", "open/Cargo.toml")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	var buf bytes.Buffer
	got := Find(root, Unbounded, WithLogger(testLogger(&buf)))

	assert.Equal(t, []string{"Cargo.toml", "open/Cargo.toml"}, rel(t, root, got))
	assert.Contains(t, buf.String(), "locked")
}

func TestFind_RootIsManifest(t *testing.T) {
	root := tree(t, "Cargo.toml")
	var buf bytes.Buffer

	got := Find(filepath.Join(root, "Cargo.toml"), Unbounded, WithLogger(testLogger(&buf)))
	assert.Equal(t, []string{filepath.Join(root, "Cargo.toml")}, got)
}

func TestFind_MissingRoot(t *testing.T) {
	var buf bytes.Buffer
	got := Find(filepath.Join(t.TempDir(), "nope"), Unbounded, WithLogger(testLogger(&buf)))
	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "nope")
}

func TestFind_WithFileName(t *testing.T) {
	root := tree(t, "Other.toml", "Cargo.toml")
	var buf bytes.Buffer

	got := Find(root, 0, WithLogger(testLogger(&buf)), WithFileName("Other.toml"))
	assert.Equal(t, []string{"Other.toml"}, rel(t, root, got))
}

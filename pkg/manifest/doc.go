// Package manifest reads Cargo.toml files into a typed [Manifest].
//
// Only the fields needed for citations are decoded: the [package] section
// (name, version, authors, description, repository, keywords) and the
// [dependencies] table. Everything else in the file is ignored.
//
// # Dependencies
//
// A dependency is either a bare version string or a table:
//
//	[dependencies]
//	serde = "1.0"
//	local = { path = "../local" }
//	forked = { git = "https://github.com/me/forked", version = "0.3" }
//
// The two shapes decode into the same [Dependency] type; [Dependency.Source]
// tells whether it should be resolved against crates.io, a local path, or a
// git repository.
package manifest
